package swap

import (
	"context"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/iov-one/synto/x"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/invoke"
	"github.com/iov-one/synto/x/token"
	"github.com/iov-one/synto/x/utils"
	"github.com/stretchr/testify/require"
)

const (
	walletLamports uint64 = 10000000000
	escrowRent     uint64 = 1231920
	tokenRent      uint64 = 2039280
)

// fixture is a chain with funded wallets and a 6 decimal mint.
type fixture struct {
	db      synto.CacheableKVStore
	sigs    *syntotest.CtxAuth
	auth    x.Authenticator
	bank    bank.BaseController
	tokens  token.BaseController
	handler synto.Handler

	alice, bob, eve synto.Address
	mint, minter    synto.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		sigs:   &syntotest.CtxAuth{Key: "auth"},
		bank:   bank.NewController(),
		alice:  syntotest.NewAddress(),
		bob:    syntotest.NewAddress(),
		eve:    syntotest.NewAddress(),
		mint:   syntotest.NewAddress(),
		minter: syntotest.NewAddress(),
	}
	f.auth = x.ChainAuth(f.sigs, invoke.Authenticate{})
	f.tokens = token.NewController(f.auth, f.bank)
	f.handler = NewProgramHandler(f.auth, f.bank, f.tokens)

	for _, w := range []synto.Address{f.alice, f.bob, f.eve} {
		require.NoError(t, f.bank.Credit(f.db, w, walletLamports))
	}
	require.NoError(t, f.bank.Credit(f.db, f.minter, walletLamports))
	_, err := f.bank.CreateAccount(f.db, f.minter, f.mint, token.ProgramID, token.MintSize)
	require.NoError(t, err)
	m := token.Mint{MintAuthority: f.minter, FreezeAuthority: f.minter, Decimals: 6, IsInitialized: true}
	raw, err := m.Marshal()
	require.NoError(t, err)
	require.NoError(t, f.bank.Store(f.db, token.ProgramID, f.mint, raw))
	return f
}

func (f *fixture) ctx(signers ...synto.Address) synto.Context {
	return f.sigs.SetSigners(context.Background(), signers...)
}

// deliver runs the instruction in a savepoint, signed by signer.
func (f *fixture) deliver(signer synto.Address, ins *synto.Instruction) (*synto.DeliverResult, error) {
	tx := &syntotest.Tx{Msg: ins}
	return utils.NewSavepoint().OnDeliver().Deliver(f.ctx(signer), f.db, tx, f.handler)
}

func (f *fixture) check(signer synto.Address, ins *synto.Instruction) (*synto.CheckResult, error) {
	tx := &syntotest.Tx{Msg: ins}
	return utils.NewSavepoint().OnCheck().Check(f.ctx(signer), f.db, tx, f.handler)
}

// fund creates the token account of wallet and mints amount to it. The
// minter pays the rent.
func (f *fixture) fund(t testing.TB, wallet synto.Address, amount uint64) synto.Address {
	t.Helper()
	addr, err := f.tokens.EnsureAssociated(f.ctx(f.minter), f.db, f.minter, wallet, f.mint)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, f.tokens.MintTo(f.ctx(f.minter), f.db, f.mint, addr, f.minter, amount))
	}
	return addr
}

// freeze freezes the token account at addr, signed by the minter.
func (f *fixture) freeze(t testing.TB, addr synto.Address) {
	t.Helper()
	require.NoError(t, f.tokens.SetFrozen(f.ctx(f.minter), f.db, addr, f.mint, f.minter, true))
}

// initialize creates the escrow of owner.
func (f *fixture) initialize(t testing.TB, owner synto.Address) synto.Address {
	t.Helper()
	ins, err := NewInitializeInstruction(owner)
	require.NoError(t, err)
	_, err = f.deliver(owner, ins)
	require.NoError(t, err)
	return ins.Accounts[0].Address
}

func (f *fixture) deposit(t testing.TB, escrow, signer synto.Address, amount uint64) error {
	t.Helper()
	ins, err := NewDepositInstruction(escrow, signer, f.mint, amount)
	require.NoError(t, err)
	_, err = f.deliver(signer, ins)
	return err
}

func (f *fixture) swap(t testing.TB, escrow, taker synto.Address, lamports uint64) (*synto.DeliverResult, error) {
	t.Helper()
	ins, err := NewSwapInstruction(escrow, taker, f.mint, lamports)
	require.NoError(t, err)
	return f.deliver(taker, ins)
}

// state is everything a swap instruction can observe.
type state struct {
	escrow   Escrow
	lamports uint64
	vault    uint64
}

func (f *fixture) state(t testing.TB, escrow synto.Address) state {
	t.Helper()
	e, err := loadEscrow(f.db, f.bank, escrow)
	require.NoError(t, err)
	lamports, err := f.bank.Balance(f.db, escrow)
	require.NoError(t, err)
	s := state{escrow: *e, lamports: lamports}
	vault, _, err := token.AssociatedAddress(escrow, f.mint)
	require.NoError(t, err)
	if acct, err := f.tokens.Account(f.db, vault); err == nil {
		s.vault = acct.Amount
	}
	return s
}

func (f *fixture) lamports(t testing.TB, addr synto.Address) uint64 {
	t.Helper()
	b, err := f.bank.Balance(f.db, addr)
	require.NoError(t, err)
	return b
}

func (f *fixture) tokenBalance(t testing.TB, wallet synto.Address) uint64 {
	t.Helper()
	addr, _, err := token.AssociatedAddress(wallet, f.mint)
	require.NoError(t, err)
	acct, err := f.tokens.Account(f.db, addr)
	require.NoError(t, err)
	return acct.Amount
}
