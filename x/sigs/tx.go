package sigs

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// instruction. The signatures are not part of it.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the
	// instruction.
	GetSignatures() []*StdSignature
}

// StdSignature is an ed25519 signature together with the public key that
// made it and the sequence it was made for.
type StdSignature struct {
	PubKey    synto.Address `cbor:"1,keyasint" json:"pubkey"`
	Signature []byte        `cbor:"2,keyasint" json:"signature"`
	Sequence  int64         `cbor:"3,keyasint" json:"sequence"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.PubKey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if err := s.PubKey.Validate(); err != nil {
		return errors.Wrap(err, "public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
