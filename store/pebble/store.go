/*
Package pebble implements a flat CommitKVStore on cockroachdb/pebble.

All writes of a cache wrap land in a single pebble batch. The app hash is
a running sha256 chained over every written operation, stored together
with the version under reserved keys.
*/
package pebble

import (
	"crypto/sha256"
	"encoding/binary"
	stderrors "errors"

	"github.com/cockroachdb/pebble"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
)

var (
	versionKey = []byte("_pb:version")
	hashKey    = []byte("_pb:hash")
)

// CommitStore keeps the latest state only. History is represented by the
// hash chain, not by queryable versions.
type CommitStore struct {
	db *pebble.DB
	// meta holds the state of the last commit and the hash of the
	// not yet committed writes.
	meta *meta
}

type meta struct {
	version int64
	hash    []byte
	working []byte
}

var _ store.CommitKVStore = CommitStore{}

// Open opens or creates the database at path. Options may be nil.
func Open(path string, opts *pebble.Options) (CommitStore, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return CommitStore{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return CommitStore{db: db, meta: &meta{}}, nil
}

// Close releases the database.
func (s CommitStore) Close() error {
	return s.db.Close()
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if err != nil {
		if stderrors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer closer.Close()
	res := make([]byte, len(val))
	copy(res, val)
	return res, nil
}

// Has checks if a key exists.
func (s CommitStore) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	return val != nil, err
}

// Set writes directly to the database, outside of the hash chain. Used by
// the batch only.
func (s CommitStore) Set(key, value []byte) error {
	return s.db.Set(key, value, pebble.Sync)
}

// Delete removes directly from the database.
func (s CommitStore) Delete(key []byte) error {
	return s.db.Delete(key, pebble.Sync)
}

// NewBatch returns an atomic batch that extends the working hash on
// Write.
func (s CommitStore) NewBatch() store.Batch {
	return &batch{
		b:    s.db.NewBatch(),
		meta: s.meta,
	}
}

// CacheWrap returns a btree cache whose Write lands in one pebble batch.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return newIterator(s.db, start, end, false)
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return newIterator(s.db, start, end, true)
}

// Commit seals the working hash and increments the version.
func (s CommitStore) Commit() (store.CommitID, error) {
	version := s.meta.version + 1
	hash := s.meta.working
	if hash == nil {
		hash = s.meta.hash
	}

	b := s.db.NewBatch()
	defer b.Close()
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(version))
	if err := b.Set(versionKey, raw[:], nil); err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := b.Set(hashKey, hash, nil); err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	s.meta.version = version
	s.meta.hash = hash
	s.meta.working = nil
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion reads the version and hash of the last commit.
func (s CommitStore) LoadLatestVersion() error {
	raw, err := s.Get(versionKey)
	if err != nil {
		return err
	}
	if raw == nil {
		*s.meta = meta{}
		return nil
	}
	if len(raw) != 8 {
		return errors.Wrap(errors.ErrDatabase, "corrupted version")
	}
	hash, err := s.Get(hashKey)
	if err != nil {
		return err
	}
	*s.meta = meta{
		version: int64(binary.BigEndian.Uint64(raw)),
		hash:    hash,
	}
	return nil
}

// LatestVersion returns info on the latest commit.
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.meta.version, Hash: s.meta.hash}, nil
}

// batch collects operations in a pebble batch and chains them into the
// working hash once written.
type batch struct {
	b    *pebble.Batch
	meta *meta
	ops  []store.Op
}

var _ store.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return b.b.Delete(key, nil)
}

// Write commits the batch atomically. The batch cannot be reused.
func (b *batch) Write() error {
	defer b.b.Close()
	if len(b.ops) == 0 {
		return nil
	}
	if err := b.b.Commit(pebble.Sync); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	prev := b.meta.working
	if prev == nil {
		prev = b.meta.hash
	}
	b.meta.working = chainHash(prev, b.ops)
	b.ops = nil
	return nil
}

// chainHash returns sha256(prev || op...) where every op is encoded as a
// kind byte followed by length prefixed key and value.
func chainHash(prev []byte, ops []store.Op) []byte {
	h := sha256.New()
	h.Write(prev)
	var n [4]byte
	for _, op := range ops {
		if op.IsSetOp() {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{2})
		}
		binary.BigEndian.PutUint32(n[:], uint32(len(op.Key())))
		h.Write(n[:])
		h.Write(op.Key())
		binary.BigEndian.PutUint32(n[:], uint32(len(op.Value())))
		h.Write(n[:])
		h.Write(op.Value())
	}
	return h.Sum(nil)
}
