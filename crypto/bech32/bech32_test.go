package bech32

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/syntotest/assert"
)

func TestEncodeDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	assert.Nil(t, err)

	hrp, payload, err := Decode(enc)
	assert.Nil(t, err)
	assert.Equal(t, "tiov", hrp)
	assert.Equal(t, want, payload)

	s, err := Encode(hrp, payload)
	assert.Nil(t, err)
	assert.Equal(t, enc, s)
}

func TestDecodeWithPrefix(t *testing.T) {
	s, err := Encode("synto", make([]byte, 32))
	assert.Nil(t, err)

	cases := map[string]struct {
		raw     string
		hrp     string
		wantErr *errors.Error
	}{
		"matching prefix": {raw: s, hrp: "synto"},
		"other prefix":    {raw: s, hrp: "tiov", wantErr: errors.ErrInput},
		"bad checksum":    {raw: "tiov1w3jhxapdwpshjmr0v9jqymqq4q", hrp: "tiov", wantErr: errors.ErrInput},
		"not bech32":      {raw: "hello", hrp: "synto", wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			payload, err := DecodeWithPrefix(tc.raw, tc.hrp)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, make([]byte, 32), payload)
		})
	}

	_, err = Encode("", []byte{1})
	assert.IsErr(t, errors.ErrEmpty, err)
}
