package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/weavetest/assert"
)

// TestSuite runs the same KVStore checks against any store implementation.
// The btree cache and the iavl commit store tests both use it.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that writes are visible in the layer they were made in, and
// only become visible in the parent after Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	goal, balance := []byte("goal:1"), []byte("60")
	s.AssertGetHas(t, base, goal, nil, false)
	assert.Nil(t, base.Set(goal, balance))
	s.AssertGetHas(t, base, goal, balance, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, goal, balance, true)

	lock, locked := []byte("lock:1"), []byte("1000")
	assert.Nil(t, cache.Set(lock, locked))
	s.AssertGetHas(t, cache, lock, locked, true)
	s.AssertGetHas(t, base, lock, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, goal, balance, true)
	s.AssertGetHas(t, base, lock, locked, true)

	// A discarded cache leaves no trace.
	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("goal:2"), []byte("5")))
	assert.Nil(t, discarded.Delete(goal))
	discarded.Discard()
	s.AssertGetHas(t, base, goal, balance, true)
	s.AssertGetHas(t, base, []byte("goal:2"), nil, false)

	// A written delete removes the value from the parent.
	withdraw := base.CacheWrap()
	assert.Nil(t, withdraw.Delete(lock))
	assert.Nil(t, withdraw.Write())
	s.AssertGetHas(t, base, lock, nil, false)
	s.AssertGetHas(t, base, goal, balance, true)
}

// CacheConflicts checks that a child layer can overwrite and delete values of
// its parent without the parent noticing until Write.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	cases := map[string]struct {
		parentOps []Op
		childOps  []Op
		// Key is what we query, Value is what we expect.
		parentQueries []Model
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[0]), SetOp(ks[3], vs[3]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[0]), Pair(ks[2], nil), Pair(ks[3], vs[3])},
		},
		"delete and set again": {
			parentOps:     []Op{SetOp(ks[0], vs[0])},
			childOps:      []Op{DelOp(ks[0]), SetOp(ks[0], vs[2])},
			parentQueries: []Model{Pair(ks[0], vs[0])},
			childQueries:  []Model{Pair(ks[0], vs[2])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// IteratorRanges checks forward and reverse iteration with and without
// bounds over data spread between a parent and a child layer.
func (s *TestSuite) IteratorRanges(t *testing.T) {
	const size = 40

	child := randModels(size, 8, 20)
	parent := randModels(size, 8, 20)
	deleted := randModels(10, 8, 20)
	all := sortModels(append(append([]Model{}, child...), parent...))
	only := sortModels(child)

	childOps := append(makeSetOps(child...), makeDelOps(deleted...)...)

	cases := map[string]iterCase{
		"child only": {
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, only},
				{only[10].Key, nil, false, only[10:]},
				{nil, only[30].Key, false, only[:30]},
				{only[5].Key, only[25].Key, false, only[5:25]},
				{nil, nil, true, reverse(only)},
				{only[20].Key, nil, true, reverse(only[20:])},
				{nil, only[15].Key, true, reverse(only[:15])},
				{only[3].Key, only[33].Key, true, reverse(only[3:33])},
			},
		},
		"child and parent combined": {
			pre:   makeSetOps(parent...),
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, all},
				{all[10].Key, nil, false, all[10:]},
				{nil, all[60].Key, false, all[:60]},
				{all[17].Key, all[48].Key, false, all[17:48]},
				{nil, nil, true, reverse(all)},
				{all[34].Key, nil, true, reverse(all[34:])},
				{nil, all[19].Key, true, reverse(all[:19])},
				{all[6].Key, all[66].Key, true, reverse(all[6:66])},
			},
		},
		"child deletes everything in parent": {
			pre:     makeSetOps(parent...),
			child:   makeDelOps(parent...),
			queries: []rangeQuery{{nil, nil, false, nil}, {nil, nil, true, nil}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// AssertGetHas checks both Get and Has results for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("want %X value, got %X", val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range i.pre {
		assert.Nil(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range i.child {
		assert.Nil(t, op.Apply(child))
	}

	for _, q := range i.queries {
		var (
			iter Iterator
			err  error
		)
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for n, want := range q.expected {
			key, value, err := iter.Next()
			assert.Nil(t, err)
			if !bytes.Equal(want.Key, key) {
				t.Fatalf("element %d: want key %X, got %X", n, want.Key, key)
			}
			if !bytes.Equal(want.Value, value) {
				t.Fatalf("element %d: want value %X, got %X", n, want.Value, value)
			}
		}
		if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("want ErrIteratorDone, got %+v", err)
		}
		iter.Release()
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

// reverse returns a copy of the slice with elements in reverse order.
func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

// sortModels returns a copy of the models sorted by key.
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
