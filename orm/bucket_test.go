package orm

import (
	"testing"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/store"
	"github.com/iov-one/piggybank/weavetest/assert"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &Counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := NewSimpleObj([]byte("mykey"), &Counter{Count: -999})
	b := NewBucket("mybucket", o)

	db := store.MemStore()
	if err := b.Save(db, o); !errors.ErrState.Is(err) {
		t.Fatalf("invalid object must not save: %s", err)
	}
	if err := b.Save(db, NewSimpleObj(nil, &Counter{Count: 1})); !errors.ErrEmpty.Is(err) {
		t.Fatalf("object without a key must not save: %s", err)
	}
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	obj, err := b.Get(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("c1"), &Counter{Count: 848})))

	ok, err := b.Has(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	obj, err = b.Get(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("c1"), obj.Key())
	assert.Equal(t, int64(848), obj.Value().(*Counter).Count)

	assert.Nil(t, b.Delete(db, []byte("c1")))
	obj, err = b.Get(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketIndex(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{})).
		WithIndex("owner", counterByOwner, false)
	db := store.MemStore()

	save := func(key, owner string, count int64) {
		t.Helper()
		obj := NewSimpleObj([]byte(key), &Counter{Owner: owner, Count: count})
		assert.Nil(t, b.Save(db, obj))
	}
	save("a", "alice", 1)
	save("b", "alice", 2)
	save("c", "bob", 3)
	save("d", "", 4)

	objs, err := b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))
	assert.Equal(t, []byte("a"), objs[0].Key())
	assert.Equal(t, []byte("b"), objs[1].Key())

	// Moving an object updates both index entries.
	save("b", "bob", 2)
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))
	objs, err = b.GetIndexed(db, "owner", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))

	assert.Nil(t, b.Delete(db, []byte("a")))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))

	if _, err := b.GetIndexed(db, "unknown", []byte("alice")); !ErrInvalidIndex.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestBucketUniqueIndex(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{})).
		WithIndex("owner", counterByOwner, true)
	db := store.MemStore()

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), &Counter{Owner: "alice"})))
	err := b.Save(db, NewSimpleObj([]byte("b"), &Counter{Owner: "alice"}))
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestBucketQuery(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{})).
		WithIndex("owner", counterByOwner, false)
	db := store.MemStore()

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("aa"), &Counter{Owner: "alice", Count: 1})))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("ab"), &Counter{Owner: "alice", Count: 2})))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("ba"), &Counter{Owner: "bob", Count: 3})))

	qr := piggybank.NewQueryRouter()
	b.Register("counters", qr)

	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("bucket not registered")
	}
	res, err := h.Query(db, piggybank.KeyQueryMod, []byte("ab"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, b.DBKey([]byte("ab")), res[0].Key)

	res, err = h.Query(db, piggybank.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, piggybank.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	idx := qr.Handler("/counters/owner")
	if idx == nil {
		t.Fatal("index not registered")
	}
	res, err = idx.Query(db, piggybank.KeyQueryMod, []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, b.DBKey([]byte("ba")), res[0].Key)

	if _, err := h.Query(db, "range", nil); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"simple":      {prefix: []byte("abc"), end: []byte("abd")},
		"overflow":    {prefix: []byte{1, 255}, end: []byte{2}},
		"all maximum": {prefix: []byte{255, 255}, end: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.prefix, start)
			assert.Equal(t, tc.end, end)
		})
	}
}
