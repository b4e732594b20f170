package syntotest

import "github.com/iov-one/synto"

// Handler is a mock implementation of the synto.Handler interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult synto.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult synto.DeliverResult
	DeliverErr    error

	// Write, when set, is stored under its key on every call, before
	// returning the result.
	Write *synto.Model
}

var _ synto.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db synto.KVStore) error {
	if h.Write == nil {
		return nil
	}
	return db.Set(h.Write.Key, h.Write.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
