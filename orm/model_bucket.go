package orm

import (
	"reflect"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary index key. Result is loaded into given
	// destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db piggybank.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex returns all objects that secondary index with given name and
	// given key maps to. If an index with given name does not exist,
	// ErrInvalidIndex is returned.
	// Each element of destination is a pointer to a model and it must be
	// a pointer to a slice, for example *[]*Goal. Results are appended.
	// Returned are the primary keys of the loaded models, in the same
	// order.
	ByIndex(db piggybank.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) (keys [][]byte, err error)

	// Put saves given model in the database under given key. Before
	// inserting into the database, the model is validated. An existing
	// entity under the same key is overwritten.
	Put(db piggybank.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db piggybank.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value exists.
	// It returns ErrNotFound if no entity can be found.
	Has(db piggybank.ReadOnlyKVStore, key []byte) error

	// Register registers this bucket and its indexes for queries.
	Register(name string, r piggybank.QueryRouter)
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model. Because of Go type system, using []Model type would not work for
// us. Instead we use a placeholder type and the validation is done during
// the runtime.
type ModelSlicePtr interface{}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as given example under the named bucket.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

type modelBucket struct {
	b Bucket

	// model is the pointer type of the stored structure, for example
	// *goal.Goal.
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) Register(name string, r piggybank.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db piggybank.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) ByIndex(db piggybank.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, nil
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}
	if dest.IsNil() {
		return nil, errors.Wrap(errors.ErrImmutable, "got nil pointer")
	}
	dest = dest.Elem()
	if dest.Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}

	// It is allowed to pass destination as both []MyModel and []*MyModel
	sliceOfPointers := dest.Type().Elem().Kind() == reflect.Ptr

	allowed := dest.Type().Elem()
	if sliceOfPointers {
		allowed = allowed.Elem()
	}
	if mb.model.Elem() != allowed {
		return nil, errors.Wrapf(errors.ErrType, "this bucket operates on %s model and cannot return %s", mb.model, allowed)
	}

	keys := make([][]byte, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		val := reflect.ValueOf(obj.Value())
		if !sliceOfPointers {
			val = val.Elem()
		}
		dest.Set(reflect.Append(dest, val))
		keys = append(keys, obj.Key())
	}
	return keys, nil
}

func (mb *modelBucket) Put(db piggybank.KVStore, key []byte, m Model) error {
	mTp := reflect.TypeOf(m)
	if mTp != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T type in this bucket", m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db piggybank.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Has(db piggybank.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		// nil key is a special case that would cause the store API to panic.
		return errors.ErrNotFound
	}

	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}
