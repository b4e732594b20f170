package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := synto.WithChainID(context.Background(), chainID)

	priv := syntotest.NewKey()
	perms := []synto.Address{priv.Address()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec synto.Decorator, my synto.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec synto.Decorator, my synto.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(synto.Decorator, synto.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.Error(t, err, "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []synto.Address{}, signers.Signers)

		// test allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorChargesGas(t *testing.T) {
	kv := store.MemStore()
	chainID := "deco-rate"
	ctx := synto.WithChainID(context.Background(), chainID)

	a, b := syntotest.NewKey(), syntotest.NewKey()
	tx := NewStdTx([]byte("two signers"))
	sa, err := SignTx(a, tx, chainID, 0)
	require.NoError(t, err)
	sb, err := SignTx(b, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sa, sb}

	res, err := NewDecorator().Check(ctx, kv, tx, new(SigCheckHandler))
	require.NoError(t, err)
	assert.Equal(t, int64(2*signatureVerifyCost), res.GasAllocated)
}

func TestUnsignedTxRejected(t *testing.T) {
	ctx := synto.WithChainID(context.Background(), "deco-rate")
	tx := &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "test/sigs"}}

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, new(SigCheckHandler))
	assert.Error(t, err)

	h := new(SigCheckHandler)
	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, store.MemStore(), tx, h)
	assert.NoError(t, err)
	assert.Empty(t, h.Signers)
}
