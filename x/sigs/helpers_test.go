package sigs

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/syntotest"
)

// StdTx is a signed transaction carrying opaque sign bytes.
type StdTx struct {
	syntotest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ synto.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx:      syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "test/sigs"}},
		Payload: payload,
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []synto.Address
}

var _ synto.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx synto.Context, store synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	s.Signers = Authenticate{}.Signers(ctx)
	return &synto.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx synto.Context, store synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	s.Signers = Authenticate{}.Signers(ctx)
	return &synto.DeliverResult{}, nil
}
