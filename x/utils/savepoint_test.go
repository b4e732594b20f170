package utils

import (
	"context"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    synto.Decorator
		failing bool
		check   bool // whether to call Check or Deliver

		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, error keeps both writes": {
			save:    NewSavepoint(),
			failing: true,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"savepoint on check, error rolls back": {
			save:    NewSavepoint().OnCheck(),
			failing: true,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on deliver, error rolls back": {
			save:    NewSavepoint().OnDeliver(),
			failing: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation keeps both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			failing: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			failing: true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			h := &syntotest.Handler{Write: &synto.Model{Key: nk, Value: nv}}
			if tc.failing {
				h.CheckErr = errors.ErrInsufficientFunds
				h.DeliverErr = errors.ErrInsufficientFunds
			}

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, h)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, h)
			}
			if tc.failing {
				assert.True(t, errors.ErrInsufficientFunds.Is(err))
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
