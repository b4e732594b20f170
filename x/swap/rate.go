package swap

import (
	"math/bits"

	"github.com/iov-one/synto/errors"
)

// The fixed exchange rate is RateNumerator tokens for every RateDenominator
// lamports, 0.13 token units per lamport. With 9 decimals for the native
// currency and 6 for the token this is 130 tokens per coin.
const (
	RateNumerator   uint64 = 130000000
	RateDenominator uint64 = 1000000000
)

// MaxPayerAmount is the largest lamport amount TokensOut accepts.
const MaxPayerAmount = ^uint64(0) / RateNumerator

// TokensOut returns the tokens paid for lamports, rounded down.
func TokensOut(lamports uint64) (uint64, error) {
	hi, lo := bits.Mul64(lamports, RateNumerator)
	if hi != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "payer amount %d exceeds %d", lamports, MaxPayerAmount)
	}
	return lo / RateDenominator, nil
}
