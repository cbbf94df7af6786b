package store

import "github.com/iov-one/charity"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = charity.ReadOnlyKVStore
type SetDeleter = charity.SetDeleter
type KVStore = charity.KVStore
type Iterator = charity.Iterator
type CacheableKVStore = charity.CacheableKVStore
type KVCacheWrap = charity.KVCacheWrap
type CommitKVStore = charity.CommitKVStore
type CommitID = charity.CommitID

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}
