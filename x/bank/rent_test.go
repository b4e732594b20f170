package bank

import (
	"testing"

	"github.com/iov-one/synto/syntotest/assert"
)

func TestMinimumBalance(t *testing.T) {
	cases := map[string]struct {
		rent Rent
		size int
		want uint64
	}{
		"wallet":        {rent: DefaultRent, size: 0, want: 890880},
		"escrow record": {rent: DefaultRent, size: 49, want: 1231920},
		"token account": {rent: DefaultRent, size: 165, want: 2039280},
		"mint":          {rent: DefaultRent, size: 82, want: 1461600},
		"saturates":     {rent: Rent{LamportsPerByteYear: 1 << 62, ExemptionYears: 8}, size: 0, want: ^uint64(0)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rent.MinimumBalance(tc.size))
		})
	}
}
