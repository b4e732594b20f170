package app

import (
	"context"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/iov-one/synto/syntotest/assert"
	"github.com/stretchr/testify/mock"
)

func TestRouter(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()

		good    = &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "program/good"}}
		bad     = &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "program/bad"}}
		missing = &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "program/missing"}}

		counter = &syntotest.Handler{}
		failing = &syntotest.Handler{CheckErr: errors.ErrHuman, DeliverErr: errors.ErrHuman}
	)

	r := NewRouter()
	r.Handle("program/good", counter)
	r.Handle("program/bad", failing)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("program/good", counter) })
	assert.Panics(t, func() { r.Handle("program:7", counter) })

	_, err := r.Check(ctx, db, good)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, good)
	assert.Nil(t, err)
	assert.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, db, bad)
	assert.IsErr(t, errors.ErrHuman, err)
	assert.Equal(t, 1, failing.CallCount())

	_, err = r.Deliver(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Check(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 2, counter.CallCount())
}

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	args := m.Called(ctx, db, tx)
	return args.Get(0).(*synto.CheckResult), args.Error(1)
}

func (m *mockHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	args := m.Called(ctx, db, tx)
	return args.Get(0).(*synto.DeliverResult), args.Error(1)
}

func TestRouterPassesArguments(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	tx := &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "program/mock"}}

	h := &mockHandler{}
	h.On("Check", ctx, db, tx).Return(&synto.CheckResult{Log: "checked"}, nil).Once()
	h.On("Deliver", ctx, db, tx).Return(&synto.DeliverResult{Log: "delivered"}, nil).Once()

	r := NewRouter()
	r.Handle("program/mock", h)

	cres, err := r.Check(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, "checked", cres.Log)
	dres, err := r.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, "delivered", dres.Log)

	h.AssertExpectations(t)
}
