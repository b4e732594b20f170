package token

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
)

const (
	transferCost         = 100
	mintToCost           = 100
	setFrozenCost        = 50
	createAssociatedCost = 500
)

// RegisterRoutes will instantiate and register the token program and the
// associated token account program.
func RegisterRoutes(r synto.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(synto.ProgramPath(ProgramID), NewTokenHandler(auth, ctrl))
	r.Handle(synto.ProgramPath(AssociatedProgramID), NewAssociatedHandler(auth, ctrl))
}

// TokenHandler processes the token program instructions.
type TokenHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ synto.Handler = TokenHandler{}

// NewTokenHandler creates the token program handler.
func NewTokenHandler(auth x.Authenticator, ctrl Controller) TokenHandler {
	return TokenHandler{auth: auth, ctrl: ctrl}
}

func (h TokenHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	res := synto.CheckResult{GasAllocated: transferCost}
	switch msg.(type) {
	case *MintToMsg:
		res.GasAllocated = mintToCost
	case *SetFrozenMsg:
		res.GasAllocated = setFrozenCost
	}
	return &res, nil
}

func (h TokenHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	switch msg := msg.(type) {
	case *TransferMsg:
		err = h.ctrl.Transfer(ctx, db, msg.Source, msg.Dest, msg.Authority, msg.Amount)
	case *MintToMsg:
		err = h.ctrl.MintTo(ctx, db, msg.Mint, msg.Dest, msg.Authority, msg.Amount)
	case *SetFrozenMsg:
		err = h.ctrl.SetFrozen(ctx, db, msg.Account, msg.Mint, msg.Authority, msg.Frozen)
	default:
		err = errors.Wrapf(errors.ErrHuman, "unhandled message %T", msg)
	}
	if err != nil {
		return nil, err
	}
	return &synto.DeliverResult{}, nil
}

// validate decodes the instruction. The authority is verified early so the
// mempool rejects unsigned instructions.
func (h TokenHandler) validate(ctx synto.Context, tx synto.Tx) (interface{}, error) {
	ins, err := synto.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	msg, err := decodeTokenInstruction(ins)
	if err != nil {
		return nil, err
	}
	var authority synto.Address
	switch msg := msg.(type) {
	case *TransferMsg:
		authority = msg.Authority
	case *MintToMsg:
		authority = msg.Authority
	case *SetFrozenMsg:
		authority = msg.Authority
	}
	if !h.auth.HasAddress(ctx, authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return msg, nil
}

// AssociatedHandler processes the associated token account program.
type AssociatedHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ synto.Handler = AssociatedHandler{}

// NewAssociatedHandler creates the associated token account handler.
func NewAssociatedHandler(auth x.Authenticator, ctrl Controller) AssociatedHandler {
	return AssociatedHandler{auth: auth, ctrl: ctrl}
}

func (h AssociatedHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &synto.CheckResult{GasAllocated: createAssociatedCost}, nil
}

func (h AssociatedHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	var addr synto.Address
	if msg.Idempotent {
		addr, err = h.ctrl.EnsureAssociated(ctx, db, msg.Payer, msg.Wallet, msg.Mint)
	} else {
		addr, err = h.ctrl.CreateAssociated(ctx, db, msg.Payer, msg.Wallet, msg.Mint)
	}
	if err != nil {
		return nil, err
	}
	return &synto.DeliverResult{Data: addr}, nil
}

func (h AssociatedHandler) validate(ctx synto.Context, tx synto.Tx) (*CreateAssociatedMsg, error) {
	ins, err := synto.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	msg, err := decodeAssociatedInstruction(ins)
	if err != nil {
		return nil, err
	}
	want, _, err := AssociatedAddress(msg.Wallet, msg.Mint)
	if err != nil {
		return nil, err
	}
	if !want.Equals(msg.Associated) {
		return nil, errors.Wrapf(errors.ErrDerivation, "associated account of %s is %s", msg.Wallet, want)
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return msg, nil
}
