package synto

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/synto/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can use,
	// including the bump.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

// CreateProgramAddress derives an address from the given seeds and the
// program id. The result is guaranteed not to be an ed25519 public key, so
// nobody holds a private key for it: only the program can sign for it by
// presenting the seeds.
//
// ErrDerivation is returned when the digest happens to be a valid curve
// point. Callers usually want FindProgramAddress.
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "%d seeds", len(seeds))
	}
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}

	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d is %d bytes", i, len(s))
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(pdaMarker))
	sum := h.Sum(nil)

	if IsOnCurve(sum) {
		return nil, errors.Wrap(errors.ErrDerivation, "address is on curve")
	}
	return Address(sum), nil
}

// FindProgramAddress searches for the canonical bump, starting at 255 and
// going down, that together with seeds derives an off curve address.
func FindProgramAddress(seeds [][]byte, program Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrInput, "%d seeds leave no room for bump", len(seeds))
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(withBump, program)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case errors.ErrDerivation.Is(err):
			continue
		default:
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(errors.ErrDerivation, "no viable bump")
}

// IsOnCurve returns true if the 32 bytes decode to a point of the ed25519
// curve.
func IsOnCurve(b []byte) bool {
	if len(b) != AddressLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
