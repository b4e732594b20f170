package app

import (
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/x/sigs"
	"github.com/iov-one/synto/x/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxRoundTrip(t *testing.T) {
	key := crypto.GenPrivateKey()
	ins, err := swap.NewInitializeInstruction(key.Address())
	require.NoError(t, err)

	tx := &Tx{Instruction: ins}
	require.NoError(t, tx.Sign(key, chainID, 0))
	raw, err := tx.Marshal()
	require.NoError(t, err)

	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, synto.ProgramPath(swap.ProgramID), msg.Path())

	// the signature covers the decoded instruction
	signers, err := sigs.VerifyTxSignatures(store.MemStore(), decoded.(*Tx), chainID)
	require.NoError(t, err)
	assert.Equal(t, []synto.Address{key.Address()}, signers)
}

func TestSignBytesIgnoreSignatures(t *testing.T) {
	key := crypto.GenPrivateKey()
	tx := &Tx{Instruction: swap.NewWithdrawInstruction(crypto.GenPrivateKey().Address(), key.Address())}
	before, err := tx.GetSignBytes()
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key, chainID, 3))
	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTxErrors(t *testing.T) {
	_, err := TxDecoder([]byte("not cbor"))
	assert.True(t, errors.ErrInput.Is(err))

	empty := &Tx{}
	_, err = empty.GetMsg()
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = empty.GetSignBytes()
	assert.True(t, errors.ErrEmpty.Is(err))
}
