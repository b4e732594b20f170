package synto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/synto/crypto/bech32"
	"github.com/iov-one/synto/errors"
	"github.com/mr-tron/base58"
)

// AddressLength is the size of every account address. Wallet addresses are
// ed25519 public keys, program derived addresses are sha256 digests.
const AddressLength = 32

// Address is the public identifier of an account.
type Address []byte

// NewAddress returns a copy of the given bytes as an address.
func NewAddress(b []byte) Address {
	a := make(Address, len(b))
	copy(a, b)
	return a
}

// ParseAddress accepts the base58 representation as well as the explicit
// "hex:" and "bech32:" prefixed forms.
func ParseAddress(s string) (Address, error) {
	var (
		raw []byte
		err error
	)
	switch {
	case strings.HasPrefix(s, "hex:"):
		raw, err = hex.DecodeString(s[4:])
	case strings.HasPrefix(s, "bech32:"):
		_, raw, err = bech32.Decode(s[7:])
	default:
		raw, err = base58.Decode(s)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "address %q: %s", s, err)
	}
	a := Address(raw)
	return a, a.Validate()
}

// MustParseAddress is ParseAddress that panics on failure. Use it for
// constants only.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Equals returns true if both addresses are the same bytes.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate requires the address to be exactly AddressLength bytes.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns the base58 representation.
func (a Address) String() string {
	if len(a) == 0 {
		return ""
	}
	return base58.Encode(a)
}

// Bech32 returns the address encoded with the given human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	return bech32.Encode(hrp, a)
}

// MarshalJSON serializes the address using its base58 form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts every format ParseAddress does.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a string")
	}
	if s == "" {
		*a = nil
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML serializes the address using its base58 form.
func (a Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML accepts every format ParseAddress does.
func (a *Address) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
