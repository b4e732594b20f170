package utils

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// Savepoint isolates all writes done below it in a cache wrap. The cache
// is written only if the wrapped handler succeeds, any error discards
// every change made by the instruction.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ synto.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Checker) (*synto.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *synto.CheckResult
	err := inCache(store, func(db synto.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Deliverer) (*synto.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *synto.DeliverResult
	err := inCache(store, func(db synto.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// inCache runs fn on a cache wrap of store and writes it back on success.
// Stores that cannot be cache wrapped are used directly.
func inCache(store synto.KVStore, fn func(synto.KVStore) error) error {
	cstore, ok := store.(synto.CacheableKVStore)
	if !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
