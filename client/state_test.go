package client

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/syntotest/assert"
	"github.com/iov-one/synto/x/swap"
)

func faucetWallet(ctx context.Context, t testing.TB, c *Client) *Wallet {
	t.Helper()
	w, err := NewWallet(ctx, c, faucet)
	assert.Nil(t, err)
	return w
}

// ensureEscrow returns the escrow of the wallet, creating it if no other
// test did so before.
func ensureEscrow(ctx context.Context, t testing.TB, w *Wallet) synto.Address {
	t.Helper()
	addr, _, err := swap.FindEscrowAddress(w.Address())
	assert.Nil(t, err)
	if _, err := w.client.Escrow(addr); errors.ErrNotFound.Is(err) {
		_, _, err = w.InitializeEscrow(ctx)
		assert.Nil(t, err)
	}
	return addr
}

func TestAccountQueries(t *testing.T) {
	c := NewLocalClient(node)

	acct, err := c.Account(faucet.Address())
	assert.Nil(t, err)
	if acct.Lamports == 0 {
		t.Fatal("faucet must hold lamports")
	}

	tokens, err := c.TokenAccount(faucet.Address(), mint)
	assert.Nil(t, err)
	assert.Equal(t, mint, tokens.Mint)
	assert.Equal(t, faucet.Address(), tokens.Owner)

	stranger := crypto.GenPrivateKey().Address()
	_, err = c.Account(stranger)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = c.TokenAccount(stranger, mint)
	assert.IsErr(t, errors.ErrNotFound, err)

	nonce, err := c.NextNonce(stranger)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), nonce)
}

func TestInitializeEscrow(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	// a fresh key has no lamports to pay the fee with
	broke, err := NewWallet(ctx, c, crypto.GenPrivateKey())
	assert.Nil(t, err)
	_, _, err = broke.InitializeEscrow(ctx)
	if err == nil {
		t.Fatal("a key without lamports cannot pay for an escrow")
	}

	w := faucetWallet(ctx, t, c)
	addr := ensureEscrow(ctx, t, w)
	got, err := c.Escrow(addr)
	assert.Nil(t, err)
	assert.Equal(t, w.Address(), got.Owner)
	_, bump, err := swap.FindEscrowAddress(w.Address())
	assert.Nil(t, err)
	assert.Equal(t, bump, got.Bump)

	nonce, err := c.NextNonce(w.Address())
	assert.Nil(t, err)

	// the second initialize is rejected before it reaches a block
	_, _, err = w.InitializeEscrow(ctx)
	assert.IsErr(t, errors.ErrDuplicate, err)
	after, err := c.NextNonce(w.Address())
	assert.Nil(t, err)
	assert.Equal(t, nonce, after)
}

func TestDepositAndSwap(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	w := faucetWallet(ctx, t, c)
	addr := ensureEscrow(ctx, t, w)
	before, err := c.Escrow(addr)
	assert.Nil(t, err)

	deposited, err := w.Deposit(ctx, addr, mint, 1000000)
	assert.Nil(t, err)
	assert.Equal(t, before.TokenBalance+1000000, deposited.TokenBalance)

	receipt, err := w.Swap(ctx, addr, mint, 1000000)
	assert.Nil(t, err)
	assert.Equal(t, uint64(130000), receipt.TokensSent)
	assert.Equal(t, before.TokenBalance+870000, receipt.TokensLeft)
	if receipt.Height < 1 {
		t.Fatalf("committed at height %d", receipt.Height)
	}

	found, err := c.GetTxByID(ctx, receipt.ID)
	assert.Nil(t, err)
	assert.Nil(t, found.Err)
	assert.Equal(t, receipt.Height, found.Height)

	after, err := c.Escrow(addr)
	assert.Nil(t, err)
	assert.Equal(t, receipt.TokensLeft, after.TokenBalance)
}

func TestSwapAboveEscrowBalance(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	w := faucetWallet(ctx, t, c)
	addr := ensureEscrow(ctx, t, w)
	before, err := c.Escrow(addr)
	assert.Nil(t, err)

	// asks for more tokens than the faucet ever held
	_, err = w.Swap(ctx, addr, mint, 1000000000)
	if err == nil {
		t.Fatal("swap must fail when the escrow runs out of tokens")
	}
	after, err := c.Escrow(addr)
	assert.Nil(t, err)
	assert.Equal(t, before.TokenBalance, after.TokenBalance)
}

func TestWithdraw(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	w := faucetWallet(ctx, t, c)
	addr := ensureEscrow(ctx, t, w)
	_, err := w.Deposit(ctx, addr, mint, 130000)
	assert.Nil(t, err)
	_, err = w.Swap(ctx, addr, mint, 1000000)
	assert.Nil(t, err)

	amount, err := w.Withdraw(ctx, addr)
	assert.Nil(t, err)
	if amount < 1000000 {
		t.Fatalf("withdrew %d lamports, want the swap payment back", amount)
	}

	amount, err = w.Withdraw(ctx, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), amount)
}

func TestWatchEscrow(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	w := faucetWallet(ctx, t, c)
	addr := ensureEscrow(ctx, t, w)
	before, err := c.Escrow(addr)
	assert.Nil(t, err)
	want := before.TokenBalance + 5

	done := make(chan error, 1)
	go func() {
		done <- c.WatchEscrow(ctx, addr, func(e *swap.Escrow) bool {
			return e == nil || e.TokenBalance != want
		})
	}()

	_, err = w.Deposit(ctx, addr, mint, 5)
	assert.Nil(t, err)
	assert.Nil(t, <-done)

	// nothing changes an escrow that does not exist
	missing := crypto.GenPrivateKey().Address()
	short, stop := context.WithTimeout(ctx, 500*time.Millisecond)
	defer stop()
	var calls int
	err = c.WatchEscrow(short, missing, func(e *swap.Escrow) bool {
		if e != nil {
			t.Fatalf("unexpected escrow %v", e)
		}
		calls++
		return true
	})
	assert.IsErr(t, ErrTimeout, err)
	assert.Equal(t, 1, calls)
}
