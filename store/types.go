package store

import custody "github.com/iov-one/custody"

// Move references for all storage types into this package for shorter names
// everywhere.

type (
	ReadOnlyKVStore  = custody.ReadOnlyKVStore
	SetDeleter       = custody.SetDeleter
	KVStore          = custody.KVStore
	Batch            = custody.Batch
	Iterator         = custody.Iterator
	CacheableKVStore = custody.CacheableKVStore
	KVCacheWrap      = custody.KVCacheWrap
	CommitKVStore    = custody.CommitKVStore
	CommitID         = custody.CommitID
	Model            = custody.Model
)
