package token

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// RegisterQuery registers "/tokens/accounts" and "/tokens/mints". Both take
// an address and return the packed layout.
func RegisterQuery(qr synto.QueryRouter, ctrl Controller) {
	qr.Register("/tokens/accounts", accountQuery{ctrl: ctrl})
	qr.Register("/tokens/mints", accountQuery{ctrl: ctrl, mints: true})
}

type accountQuery struct {
	ctrl  Controller
	mints bool
}

var _ synto.QueryHandler = accountQuery{}

func (q accountQuery) Query(db synto.ReadOnlyKVStore, mod string, data []byte) ([]synto.Model, error) {
	if mod != synto.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod: %s", mod)
	}
	addr := synto.Address(data)
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	var (
		m   synto.Marshaller
		err error
	)
	if q.mints {
		m, err = q.ctrl.Mint(db, addr)
	} else {
		m, err = q.ctrl.Account(db, addr)
	}
	switch {
	case errors.ErrNotFound.Is(err):
		// return nothing on miss
		return nil, nil
	case err != nil:
		return nil, err
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	return []synto.Model{synto.Pair(addr, raw)}, nil
}
