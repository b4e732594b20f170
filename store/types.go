//nolint
package store

import "github.com/iov-one/synto"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = synto.ReadOnlyKVStore
type SetDeleter = synto.SetDeleter
type KVStore = synto.KVStore
type Batch = synto.Batch
type Iterator = synto.Iterator
type CacheableKVStore = synto.CacheableKVStore
type KVCacheWrap = synto.KVCacheWrap
type CommitKVStore = synto.CommitKVStore
type CommitID = synto.CommitID
type Model = synto.Model

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return synto.Pair(key, value)
}
