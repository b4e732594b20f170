/*
Package bech32 encodes addresses for display in the bech32 format.
Payloads are regrouped from 8 to 5 bit words before encoding.
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/synto/errors"
)

// Encode returns payload encoded under the human readable part hrp.
func Encode(hrp string, payload []byte) (string, error) {
	if hrp == "" {
		return "", errors.Wrap(errors.ErrEmpty, "human readable part")
	}
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	s, err := bech32.Encode(hrp, words)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return s, nil
}

// Decode returns the human readable part and the payload of s.
func Decode(s string) (string, []byte, error) {
	hrp, words, err := bech32.Decode(s)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return hrp, payload, nil
}

// DecodeWithPrefix is Decode that also requires the human readable part to
// be hrp.
func DecodeWithPrefix(s, hrp string) ([]byte, error) {
	got, payload, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if got != hrp {
		return nil, errors.Wrapf(errors.ErrInput, "prefix %q, want %q", got, hrp)
	}
	return payload, nil
}
