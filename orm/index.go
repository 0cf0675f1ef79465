package orm

import (
	"bytes"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// Returning a nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object.
type MultiKeyIndexer func(Object) ([][]byte, error)

// Index represents a secondary index on some data. It is indexed by an
// arbitrary key returned by the indexer. The value is one primary key
// (unique) or a MultiRef of primary keys (not unique). All references under
// one index value are serialized and stored under a single key, so this is
// meant for small collections, such as goals per user.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ piggybank.QueryHandler = Index{}

// NewIndex constructs an index.
// Indexer calculates the index keys for an object.
// unique enforces a unique constraint on the index.
// refKey calculates the absolute db key for a reference.
func NewIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in the secondary
// index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i Index) Update(db piggybank.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

// Keys returns the primary keys of all objects indexed under given value.
func (i Index) Keys(db piggybank.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.IndexKey(value))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load index")
	}
	return i.refs(raw)
}

func (i Index) refs(raw []byte) ([][]byte, error) {
	if raw == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return data.GetRefs(), nil
}

func (i Index) move(db piggybank.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot change primary key")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	for _, k := range oldKeys {
		if !containsKey(newKeys, k) {
			if err := i.remove(db, k, prev.Key()); err != nil {
				return err
			}
		}
	}
	for _, k := range newKeys {
		if !containsKey(oldKeys, k) {
			if err := i.insert(db, k, save.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i Index) insert(db piggybank.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(err, "cannot load index")
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return errors.Wrap(errors.ErrState, err.Error())
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

func (i Index) remove(db piggybank.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(err, "cannot load index")
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s points to another key", i.name)
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, raw)
}

// Query handles queries from the QueryRouter. It returns the referenced
// objects, not the index entries.
func (i Index) Query(db piggybank.ReadOnlyKVStore, mod string, data []byte) ([]piggybank.Model, error) {
	switch mod {
	case piggybank.KeyQueryMod:
		refs, err := i.Keys(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case piggybank.PrefixQueryMod:
		entries, err := queryPrefix(db, i.IndexKey(data))
		if err != nil {
			return nil, err
		}
		var refs [][]byte
		for _, e := range entries {
			r, err := i.refs(e.Value)
			if err != nil {
				return nil, err
			}
			refs = append(refs, r...)
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrap(errors.ErrInput, "not implemented: "+mod)
	}
}

func (i Index) loadRefs(db piggybank.ReadOnlyKVStore, refs [][]byte) ([]piggybank.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]piggybank.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrState, "dangling index reference %X", ref)
		}
		res = append(res, piggybank.Pair(key, value))
	}
	return res, nil
}
