package bank

import (
	"math"
	"math/bits"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
)

// FeeDecorator charges the configured price per signature from the main
// signer and sends it to the collector. Without a configuration no fee is
// charged.
//
// The fee is deducted before calling down the stack, so it stays paid even
// if the instruction fails.
type FeeDecorator struct {
	auth x.Authenticator
	ctrl Controller
}

var _ synto.Decorator = FeeDecorator{}

// NewFeeDecorator returns a FeeDecorator moving fees with ctrl.
func NewFeeDecorator(auth x.Authenticator, ctrl Controller) FeeDecorator {
	return FeeDecorator{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check deducts fees before calling down the stack
func (d FeeDecorator) Check(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Checker) (*synto.CheckResult, error) {
	fee, err := d.charge(ctx, store)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// Higher fees are processed first.
	res.GasAllocated = addPriority(res.GasAllocated, fee)
	return res, nil
}

// addPriority adds fee to gas, saturating at math.MaxInt64.
func addPriority(gas int64, fee uint64) int64 {
	if gas < 0 {
		gas = 0
	}
	if fee > uint64(math.MaxInt64-gas) {
		return math.MaxInt64
	}
	return gas + int64(fee)
}

// Deliver deducts fees before calling down the stack
func (d FeeDecorator) Deliver(ctx synto.Context, store synto.KVStore, tx synto.Tx, next synto.Deliverer) (*synto.DeliverResult, error) {
	if _, err := d.charge(ctx, store); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d FeeDecorator) charge(ctx synto.Context, store synto.KVStore) (uint64, error) {
	conf, err := loadConf(store)
	if err != nil {
		return 0, err
	}
	if conf == nil || conf.LamportsPerSignature == 0 {
		return 0, nil
	}
	signers := d.auth.Signers(ctx)
	if len(signers) == 0 {
		return 0, errors.Wrap(errors.ErrUnauthorized, "fee payer signature missing")
	}
	hi, fee := bits.Mul64(conf.LamportsPerSignature, uint64(len(signers)))
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "fee")
	}
	payer := signers[0]
	if err := d.ctrl.Transfer(store, SystemProgramID, payer, conf.CollectorAddress, fee); err != nil {
		return 0, errors.Wrap(err, "cannot pay fee")
	}
	return fee, nil
}
