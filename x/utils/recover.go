package utils

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ synto.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Checker) (_ *synto.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Deliverer) (_ *synto.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
