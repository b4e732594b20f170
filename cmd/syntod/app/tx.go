package app

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/sigs"
)

// Tx is the transaction envelope of the chain. It carries one instruction
// and the signatures of everyone who authorized it.
type Tx struct {
	Signatures  []*sigs.StdSignature `cbor:"1,keyasint" json:"signatures"`
	Instruction *synto.Instruction   `cbor:"2,keyasint" json:"instruction"`
}

// make sure tx fulfills all interfaces
var _ synto.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// canonical encoding, so that sign bytes do not depend on the client
var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (synto.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the instruction.
func (tx *Tx) GetMsg() (synto.Msg, error) {
	if tx.Instruction == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "instruction")
	}
	return tx.Instruction, nil
}

// GetSignatures returns all signatures.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the canonical encoding of the instruction. The
// signatures are not part of it.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	if tx.Instruction == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "instruction")
	}
	bz, err := encMode.Marshal(tx.Instruction)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Marshal encodes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := encMode.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal decodes the transaction.
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := cbor.Unmarshal(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// Sign appends the signature of key, made for the given sequence.
func (tx *Tx) Sign(key *crypto.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
