/*
Package crypto holds the ed25519 keys used to sign synto transactions.
A wallet address is the raw 32 byte ed25519 public key.
*/
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"golang.org/x/crypto/ed25519"
)

// PrivateKey is an ed25519 signing key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivateKey returns a random new private key.
func GenPrivateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivateKeyFromSeed deterministically creates a key from a 32 byte seed.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign returns the signature of message.
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// Address returns the public key, which is the wallet address.
func (p *PrivateKey) Address() synto.Address {
	pub := p.key.Public().(ed25519.PublicKey)
	return synto.NewAddress(pub)
}

// Seed returns the 32 byte seed the key was created from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// MarshalJSON stores the seed as hex. It is meant for local key files
// only.
func (p *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p.key.Seed()))
}

// UnmarshalJSON reads a key written by MarshalJSON.
func (p *PrivateKey) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "key must be a hex string")
	}
	seed, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	key, err := PrivateKeyFromSeed(seed)
	if err != nil {
		return err
	}
	*p = *key
	return nil
}

// Verify checks the signature of message against the public key in addr.
func Verify(addr synto.Address, message, sig []byte) bool {
	if len(addr) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(addr), message, sig)
}
