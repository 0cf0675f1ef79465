/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key and may possess secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// SeqID is a constant to use to get a default ID sequence.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the DB. It stores data as well as
// references to secondary indexes and sequences. All stored values are of
// the proto type.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ piggybank.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket and all indexes. You can define a name here
// for queries, which is different than the bucket name used to prefix the
// data.
func (b Bucket) Register(name string, r piggybank.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for iname, idx := range b.indexes {
		r.Register(root+"/"+iname, idx)
	}
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db piggybank.ReadOnlyKVStore, mod string, data []byte) ([]piggybank.Model, error) {
	switch mod {
	case piggybank.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// nothing on miss
		if value == nil {
			return nil, nil
		}
		return []piggybank.Model{piggybank.Pair(key, value)}, nil
	case piggybank.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrap(errors.ErrInput, "not implemented: "+mod)
	}
}

// DBKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as consecutive calls must not
// overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element. Returns nil if not found.
func (b Bucket) Get(db piggybank.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an element is stored under given key.
func (b Bucket) Has(db piggybank.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data and reconstructs the data this Bucket
// would return.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto.
func (b Bucket) Save(db piggybank.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db piggybank.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db piggybank.KVStore, key []byte, model Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && model == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns a Sequence by name.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of this bucket with given index, panics if an
// index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex is WithIndex for indexers that return several keys for
// one object.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}

	iname := b.name + "_" + name
	add := NewIndex(iname, indexer, unique, b.DBKey)
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = add
	b.indexes = indexes
	return b
}

// GetIndexed queries the named index for the given key.
func (b Bucket) GetIndexed(db piggybank.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	refs, err := idx.Keys(db, key)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}
	objs := make([]Object, len(refs))
	for i, ref := range refs {
		objs[i], err = b.Get(db, ref)
		if err != nil {
			return nil, err
		}
	}
	return objs, nil
}
