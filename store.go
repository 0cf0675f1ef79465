package piggybank

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive. Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing, unifying KVStore and Batch.
type SetDeleter interface {
	// Set sets the key. Panics on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte) error
}

// KVStore is the store every handler writes to.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator allows us to access a set of items within a range of keys.
//
//	iter, err := db.Iterator(start, end)
//	...
//	defer iter.Release()
//	for {
//	  key, value, err := iter.Next()
//	  if errors.ErrIteratorDone.Is(err) {
//	    break
//	  }
//	  ...
//	}
type Iterator interface {
	// Next moves the iterator to the next sequential key in the database,
	// as defined by order of iteration. Returns errors.ErrIteratorDone
	// when there are no more items.
	Next() (key, value []byte, err error)

	// Release releases the Iterator, allowing it to do any needed
	// cleanup.
	Release()
}

// CacheableKVStore is a KVStore that supports cache wrapping.
//
// CacheWrap() should not return a Committer, since Commit() on a cache wrap
// makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad of uncommitted data that can be queried as if
// it was written.
//
// Call Write to apply the cached data to the parent store, or Discard to drop
// it. This works like SAVEPOINT / ROLLBACK TO SAVEPOINT in SQL databases.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a store that persists state to disk, loads on start up and
// maintains version history.
type CommitKVStore interface {
	// Get returns the value at last committed state.
	// Returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// CacheWrap returns a scratch pad to perform actions on.
	CacheWrap() KVCacheWrap

	// Commit the next version to disk, and returns info.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there was
	// a crash during the last commit, it is guaranteed to return a stable
	// state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
