package token

import (
	"context"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/iov-one/synto/x/bank"
	"github.com/stretchr/testify/require"
)

// fixture is a store with a funded payer and a 6 decimal mint.
type fixture struct {
	db        synto.CacheableKVStore
	auth      *syntotest.CtxAuth
	bank      bank.BaseController
	ctrl      BaseController
	payer     synto.Address
	mint      synto.Address
	authority synto.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:        store.MemStore(),
		auth:      &syntotest.CtxAuth{Key: "auth"},
		bank:      bank.NewController(),
		payer:     syntotest.NewAddress(),
		mint:      syntotest.NewAddress(),
		authority: syntotest.NewAddress(),
	}
	f.ctrl = NewController(f.auth, f.bank)
	require.NoError(t, f.bank.Credit(f.db, f.payer, 1000000000))

	_, err := f.bank.CreateAccount(f.db, f.payer, f.mint, ProgramID, MintSize)
	require.NoError(t, err)
	m := Mint{MintAuthority: f.authority, Decimals: 6, IsInitialized: true, FreezeAuthority: f.authority}
	raw, err := m.Marshal()
	require.NoError(t, err)
	require.NoError(t, f.bank.Store(f.db, ProgramID, f.mint, raw))
	return f
}

// ctx returns a context signed by given addresses.
func (f *fixture) ctx(signers ...synto.Address) synto.Context {
	return f.auth.SetSigners(context.Background(), signers...)
}

// holder creates the associated account of wallet and mints amount to it.
func (f *fixture) holder(t testing.TB, wallet synto.Address, amount uint64) synto.Address {
	t.Helper()
	addr, err := f.ctrl.CreateAssociated(f.ctx(f.payer), f.db, f.payer, wallet, f.mint)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, f.ctrl.MintTo(f.ctx(f.authority), f.db, f.mint, addr, f.authority, amount))
	}
	return addr
}

func (f *fixture) amount(t testing.TB, addr synto.Address) uint64 {
	t.Helper()
	acct, err := f.ctrl.Account(f.db, addr)
	require.NoError(t, err)
	return acct.Amount
}
