package swap

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/bank"
)

// RegisterQuery registers "/escrows". It takes an escrow address and
// returns the packed escrow record.
func RegisterQuery(qr synto.QueryRouter, banks bank.Controller) {
	qr.Register("/escrows", escrowQuery{bank: banks})
}

type escrowQuery struct {
	bank bank.Controller
}

var _ synto.QueryHandler = escrowQuery{}

func (q escrowQuery) Query(db synto.ReadOnlyKVStore, mod string, data []byte) ([]synto.Model, error) {
	if mod != synto.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod: %s", mod)
	}
	addr := synto.Address(data)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	e, err := loadEscrow(db, q.bank, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		// return nothing on miss
		return nil, nil
	case err != nil:
		return nil, err
	}
	raw, err := e.Marshal()
	if err != nil {
		return nil, err
	}
	return []synto.Model{synto.Pair(addr, raw)}, nil
}
