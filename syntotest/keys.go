package syntotest

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/crypto"
)

// NewKey returns a random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivateKey()
}

// NewAddress returns the wallet address of a random key.
func NewAddress() synto.Address {
	return NewKey().Address()
}

// SequenceAddress returns a deterministic, non signing address that is
// made of n repeated. Useful for program ids in tests.
func SequenceAddress(n byte) synto.Address {
	a := make(synto.Address, synto.AddressLength)
	for i := range a {
		a[i] = n
	}
	return a
}
