/*
Package storetest holds the behaviour every CommitKVStore implementation
must provide. Backends call the suite from their own tests with a
constructor for a fresh store.
*/
package storetest

import (
	"testing"

	"github.com/iov-one/synto/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store and a cleanup function.
type Factory func(t testing.TB) (store.CommitKVStore, func())

// Run executes the whole suite against the store created by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("cache write and commit", func(t *testing.T) { testCommit(t, newStore) })
	t.Run("discarded cache", func(t *testing.T) { testDiscard(t, newStore) })
	t.Run("iteration", func(t *testing.T) { testIteration(t, newStore) })
}

func testCommit(t *testing.T, newStore Factory) {
	s, cleanup := newStore(t)
	defer cleanup()

	require.NoError(t, s.LoadLatestVersion())
	start, err := s.LatestVersion()
	require.NoError(t, err)
	assert.EqualValues(t, 0, start.Version)

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("acct:alice"), []byte("100")))
	require.NoError(t, cache.Set([]byte("acct:bob"), []byte("5")))

	got, err := cache.Get([]byte("acct:alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("100"), got)

	require.NoError(t, cache.Write())
	first, err := s.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Version)
	assert.NotEmpty(t, first.Hash)

	got, err = s.Get([]byte("acct:bob"))
	require.NoError(t, err)
	assert.Equal(t, []byte("5"), got)

	cache = s.CacheWrap()
	require.NoError(t, cache.Delete([]byte("acct:bob")))
	require.NoError(t, cache.Write())
	second, err := s.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)

	got, err = s.Get([]byte("acct:bob"))
	require.NoError(t, err)
	assert.Nil(t, got)

	latest, err := s.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func testDiscard(t *testing.T, newStore Factory) {
	s, cleanup := newStore(t)
	defer cleanup()
	require.NoError(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("acct:eve"), []byte("1")))
	cache.Discard()
	_, err := s.Commit()
	require.NoError(t, err)

	got, err := s.Get([]byte("acct:eve"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testIteration(t *testing.T, newStore Factory) {
	s, cleanup := newStore(t)
	defer cleanup()
	require.NoError(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	for _, k := range []string{"b:1", "a:1", "a:3", "a:2"} {
		require.NoError(t, cache.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, cache.Write())
	_, err := s.Commit()
	require.NoError(t, err)

	read := s.CacheWrap()
	it, err := read.Iterator([]byte("a:"), []byte("a;"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a:1", "a:2", "a:3"}, keys(t, it))

	it, err = read.ReverseIterator([]byte("a:"), []byte("a;"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a:3", "a:2", "a:1"}, keys(t, it))
}

func keys(t testing.TB, it store.Iterator) []string {
	t.Helper()
	defer it.Close()
	var res []string
	for it.Valid() {
		res = append(res, string(it.Key()))
		require.NoError(t, it.Next())
	}
	return res
}
