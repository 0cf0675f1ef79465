package store

import "github.com/iov-one/piggybank"

// Storage types are aliased here for shorter names in store implementations.

type ReadOnlyKVStore = piggybank.ReadOnlyKVStore
type SetDeleter = piggybank.SetDeleter
type KVStore = piggybank.KVStore
type Batch = piggybank.Batch
type Iterator = piggybank.Iterator
type CacheableKVStore = piggybank.CacheableKVStore
type KVCacheWrap = piggybank.KVCacheWrap
type CommitKVStore = piggybank.CommitKVStore
type CommitID = piggybank.CommitID
type Model = piggybank.Model

// Pair constructs a model from a key-value pair.
var Pair = piggybank.Pair
