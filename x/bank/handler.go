package bank

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/gconf"
	"github.com/iov-one/synto/x"
)

const (
	transferCost     = 150
	updateConfigCost = 1000
)

// RegisterRoutes will instantiate and register the system program.
func RegisterRoutes(r synto.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(synto.ProgramPath(SystemProgramID), NewSystemHandler(auth, ctrl))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr synto.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// SystemHandler processes the system program instructions.
type SystemHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ synto.Handler = SystemHandler{}

// NewSystemHandler creates the system program handler.
func NewSystemHandler(auth x.Authenticator, ctrl Controller) SystemHandler {
	return SystemHandler{auth: auth, ctrl: ctrl}
}

// Check verifies the instruction is well formed and authorized.
func (h SystemHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	switch msg.(type) {
	case *UpdateConfigurationMsg:
		return &synto.CheckResult{GasAllocated: updateConfigCost}, nil
	default:
		return &synto.CheckResult{GasAllocated: transferCost}, nil
	}
}

// Deliver applies the instruction.
func (h SystemHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	switch msg := msg.(type) {
	case *TransferMsg:
		if err := h.ctrl.Transfer(db, SystemProgramID, msg.From, msg.To, msg.Lamports); err != nil {
			return nil, err
		}
	case *UpdateConfigurationMsg:
		var conf Configuration
		if err := gconf.Update(ctx, db, h.auth, configPkg, &conf, msg.Patch); err != nil {
			return nil, err
		}
	}
	return &synto.DeliverResult{}, nil
}

func (h SystemHandler) validate(ctx synto.Context, tx synto.Tx) (interface{}, error) {
	ins, err := synto.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	msg, err := decodeInstruction(ins)
	if err != nil {
		return nil, err
	}
	if t, ok := msg.(*TransferMsg); ok {
		if !h.auth.HasAddress(ctx, t.From) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
		}
	}
	return msg, nil
}
