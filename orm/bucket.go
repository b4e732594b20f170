/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object, addressed by a
primary key. Buckets validate a model before storing it and can be
registered on the query router with key and prefix queries.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	synto.Persistent
	Validate() error
}

// Bucket is a prefixed subspace of the DB
type Bucket struct {
	name   string
	prefix []byte
}

var _ synto.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Has returns true if a value is stored under key.
func (b Bucket) Has(db synto.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// One loads the model stored under key into dest.
// ErrNotFound is returned if there is none.
func (b Bucket) One(db synto.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "%T: %s", dest, err)
	}
	return nil
}

// Put validates and saves the model under key.
func (b Bucket) Put(db synto.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize")
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the value at key. It returns ErrNotFound if there is none.
func (b Bucket) Delete(db synto.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", b.name, key)
	}
	return db.Delete(dbkey)
}

// Register registers this Bucket on the query router under /name.
// An empty name falls back to the bucket name.
func (b Bucket) Register(name string, r synto.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db synto.ReadOnlyKVStore, mod string, data []byte) ([]synto.Model, error) {
	switch mod {
	case synto.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []synto.Model{synto.Pair(key, value)}, nil
	case synto.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %s", mod)
	}
}

func queryPrefix(db synto.ReadOnlyKVStore, prefix []byte) ([]synto.Model, error) {
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var res []synto.Model
	for it.Valid() {
		res = append(res, synto.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixEnd returns the first key after every key starting with prefix,
// or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
