package app

import (
	"context"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/iov-one/synto/syntotest/assert"
	"github.com/iov-one/synto/x/utils"
)

type panicDecorator struct{}

func (panicDecorator) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx, next synto.Checker) (*synto.CheckResult, error) {
	panic("check")
}

func (panicDecorator) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx, next synto.Deliverer) (*synto.DeliverResult, error) {
	panic("deliver")
}

func TestChain(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
		tx  = &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "program/any"}}
	)
	c1 := &syntotest.Decorator{}
	c2 := &syntotest.Decorator{}
	h := &syntotest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nil,
		c2,
	).WithHandler(h)

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, c1.CheckCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())

	// a panic below the recovery becomes an error
	stack = ChainDecorators(c1, utils.NewRecovery()).
		Chain(panicDecorator{}, c2).
		WithHandler(h)
	_, err = stack.Check(ctx, db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrPanic, err)

	assert.Equal(t, 2, c1.CheckCallCount())
	assert.Equal(t, 2, c1.DeliverCallCount())
	// nothing below the panic is called
	assert.Equal(t, 1, c2.CheckCallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestCutoffNil(t *testing.T) {
	var nilDecorator *syntotest.Decorator
	d := &syntotest.Decorator{}
	got := cutoffNil([]synto.Decorator{nil, d, nilDecorator, d})
	assert.Equal(t, 2, len(got))
}
