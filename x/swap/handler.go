package swap

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/invoke"
	"github.com/iov-one/synto/x/token"
)

const (
	initializeCost int64 = 300
	depositCost    int64 = 400
	swapCost       int64 = 500
	withdrawCost   int64 = 100
)

// RegisterRoutes will instantiate and register the swap program. The token
// controller must accept signers added by x/invoke.
func RegisterRoutes(r synto.Registry, auth x.Authenticator, banks bank.Controller, tokens token.Controller) {
	r.Handle(synto.ProgramPath(ProgramID), NewProgramHandler(auth, banks, tokens))
}

// ProgramHandler dispatches swap program instructions by discriminator.
type ProgramHandler struct {
	handlers map[string]synto.Handler
}

var _ synto.Handler = ProgramHandler{}

// NewProgramHandler returns the handler of all swap instructions.
func NewProgramHandler(auth x.Authenticator, banks bank.Controller, tokens token.Controller) ProgramHandler {
	return ProgramHandler{handlers: map[string]synto.Handler{
		initializeInstruction: InitializeHandler{auth: auth, bank: banks},
		depositInstruction:    DepositHandler{auth: auth, bank: banks, tokens: tokens},
		swapInstruction:       SwapHandler{auth: auth, bank: banks, tokens: tokens},
		withdrawInstruction:   WithdrawHandler{auth: auth, bank: banks},
	}}
}

func (p ProgramHandler) handler(tx synto.Tx) (synto.Handler, error) {
	ins, err := synto.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	name, err := instructionName(ins.Data)
	if err != nil {
		return nil, err
	}
	return p.handlers[name], nil
}

func (p ProgramHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	h, err := p.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (p ProgramHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	h, err := p.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

// loadMsg returns the decoded instruction, which must be a T.
func loadMsg(tx synto.Tx) (interface{}, error) {
	ins, err := synto.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	return decodeInstruction(ins)
}

// loadEscrow returns the escrow stored at addr. The record must be owned by
// the swap program and addr must be derived from its owner and bump.
func loadEscrow(db synto.ReadOnlyKVStore, banks bank.Controller, addr synto.Address) (*Escrow, error) {
	acct, err := banks.Account(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	if !acct.Owner.Equals(ProgramID) {
		return nil, errors.Wrapf(errors.ErrOwner, "escrow %s is owned by %s", addr, acct.Owner)
	}
	var e Escrow
	if err := e.Unmarshal(acct.Data); err != nil {
		return nil, err
	}
	want, err := EscrowAddress(e.Owner, e.Bump)
	if err != nil {
		return nil, err
	}
	if !want.Equals(addr) {
		return nil, errors.Wrapf(errors.ErrDerivation, "escrow of %s is %s", e.Owner, want)
	}
	return &e, nil
}

func saveEscrow(db synto.KVStore, banks bank.Controller, addr synto.Address, e *Escrow) error {
	raw, err := e.Marshal()
	if err != nil {
		return err
	}
	return banks.Store(db, ProgramID, addr, raw)
}

// checkTokenAccounts ensures both token accounts are the associated
// accounts of signer and escrow.
func checkTokenAccounts(escrow, signer, mint, user, vault synto.Address) error {
	wantUser, wantVault, err := tokenAccounts(escrow, signer, mint)
	if err != nil {
		return err
	}
	if !wantUser.Equals(user) {
		return errors.Wrapf(errors.ErrDerivation, "token account of %s is %s", signer, wantUser)
	}
	if !wantVault.Equals(vault) {
		return errors.Wrapf(errors.ErrDerivation, "vault of %s is %s", escrow, wantVault)
	}
	return nil
}

// InitializeHandler creates the escrow of the signer.
type InitializeHandler struct {
	auth x.Authenticator
	bank bank.Controller
}

var _ synto.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &synto.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver allocates the escrow record, the signer pays its rent.
func (h InitializeHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, bump, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.bank.CreateAccount(db, msg.Signer, msg.Escrow, ProgramID, EscrowSize); err != nil {
		return nil, errors.Wrap(err, "cannot allocate escrow")
	}
	escrow := Escrow{Owner: msg.Signer, Bump: bump}
	if err := saveEscrow(db, h.bank, msg.Escrow, &escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &synto.DeliverResult{Data: msg.Escrow}, nil
}

func (h InitializeHandler) validate(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*InitializeMsg, uint8, error) {
	m, err := loadMsg(tx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*InitializeMsg)
	if !ok {
		return nil, 0, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if !h.auth.HasAddress(ctx, msg.Signer) {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "signer")
	}
	want, bump, err := FindEscrowAddress(msg.Signer)
	if err != nil {
		return nil, 0, err
	}
	if !want.Equals(msg.Escrow) {
		return nil, 0, errors.Wrapf(errors.ErrDerivation, "escrow of %s is %s", msg.Signer, want)
	}
	switch acct, err := h.bank.Account(db, msg.Escrow); {
	case errors.ErrNotFound.Is(err):
	case err != nil:
		return nil, 0, err
	case !acct.IsSystem():
		return nil, 0, errors.Wrapf(errors.ErrDuplicate, "escrow %s already in use", msg.Escrow)
	}
	return msg, bump, nil
}

// DepositHandler moves tokens into the vault. Anyone may deposit.
type DepositHandler struct {
	auth   x.Authenticator
	bank   bank.Controller
	tokens token.Controller
}

var _ synto.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &synto.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver increments the escrow counter, then transfers the tokens. The
// vault is created on the first deposit, funded by the signer.
func (h DepositHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if escrow.TokenBalance+msg.Amount < escrow.TokenBalance {
		return nil, errors.Wrap(errors.ErrOverflow, "escrow token balance")
	}
	escrow.TokenBalance += msg.Amount
	if err := saveEscrow(db, h.bank, msg.Escrow, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	if _, err := h.tokens.EnsureAssociated(ctx, db, msg.Signer, msg.Escrow, msg.Mint); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if err := h.tokens.Transfer(ctx, db, msg.UserTokenAccount, msg.Vault, msg.Signer, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot deposit tokens")
	}
	return &synto.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*DepositMsg, *Escrow, error) {
	m, err := loadMsg(tx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*DepositMsg)
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if !h.auth.HasAddress(ctx, msg.Signer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signer")
	}
	escrow, err := loadEscrow(db, h.bank, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if err := checkTokenAccounts(msg.Escrow, msg.Signer, msg.Mint, msg.UserTokenAccount, msg.Vault); err != nil {
		return nil, nil, err
	}
	if _, err := h.tokens.Mint(db, msg.Mint); err != nil {
		return nil, nil, err
	}
	return msg, escrow, nil
}

// SwapHandler sells vault tokens for lamports at the fixed rate.
type SwapHandler struct {
	auth   x.Authenticator
	bank   bank.Controller
	tokens token.Controller
}

var _ synto.Handler = SwapHandler{}

func (h SwapHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &synto.CheckResult{GasAllocated: swapCost}, nil
}

// Deliver takes the lamports, decrements the counter and pays the tokens
// out of the vault, signing for the escrow.
func (h SwapHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, escrow, tokensOut, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := bank.SystemTransfer(ctx, db, h.auth, h.bank, msg.Signer, msg.Escrow, msg.PayerAmount); err != nil {
		return nil, errors.Wrap(err, "cannot pay escrow")
	}

	var res synto.DeliverResult
	logger := synto.GetLogger(ctx)
	logger.Info("tokens sent", "amount", tokensOut)
	res.Logf("tokens sent %d", tokensOut)

	escrow.TokenBalance -= tokensOut
	logger.Info("tokens in escrow", "amount", escrow.TokenBalance)
	res.Logf("tokens in escrow %d", escrow.TokenBalance)
	if err := saveEscrow(db, h.bank, msg.Escrow, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	signed, _, err := invoke.WithSigner(ctx, ProgramID, escrowSeeds(escrow.Owner, escrow.Bump)...)
	if err != nil {
		return nil, err
	}
	if err := h.tokens.Transfer(signed, db, msg.Vault, msg.UserTokenAccount, msg.Escrow, tokensOut); err != nil {
		return nil, errors.Wrap(err, "cannot pay tokens")
	}
	return &res, nil
}

func (h SwapHandler) validate(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*SwapMsg, *Escrow, uint64, error) {
	m, err := loadMsg(tx)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*SwapMsg)
	if !ok {
		return nil, nil, 0, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if !h.auth.HasAddress(ctx, msg.Signer) {
		return nil, nil, 0, errors.Wrap(errors.ErrUnauthorized, "signer")
	}
	escrow, err := loadEscrow(db, h.bank, msg.Escrow)
	if err != nil {
		return nil, nil, 0, err
	}
	if err := checkTokenAccounts(msg.Escrow, msg.Signer, msg.Mint, msg.UserTokenAccount, msg.Vault); err != nil {
		return nil, nil, 0, err
	}
	tokensOut, err := TokensOut(msg.PayerAmount)
	if err != nil {
		return nil, nil, 0, err
	}
	if tokensOut > escrow.TokenBalance {
		return nil, nil, 0, errors.Wrapf(ErrUnderflow, "escrow holds %d tokens, swap wants %d", escrow.TokenBalance, tokensOut)
	}
	return msg, escrow, tokensOut, nil
}

// WithdrawHandler moves the collected lamports to the escrow owner.
type WithdrawHandler struct {
	auth x.Authenticator
	bank bank.Controller
}

var _ synto.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &synto.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver transfers everything above the rent exempt reserve of the
// escrow record.
func (h WithdrawHandler) Deliver(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*synto.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	lamports, err := h.bank.Balance(db, msg.Escrow)
	if err != nil {
		return nil, err
	}
	rent, err := h.bank.Rent(db)
	if err != nil {
		return nil, err
	}
	var amount uint64
	if reserve := rent.MinimumBalance(EscrowSize); lamports > reserve {
		amount = lamports - reserve
	}
	if err := h.bank.Transfer(db, ProgramID, msg.Escrow, msg.Signer, amount); err != nil {
		return nil, errors.Wrap(err, "cannot withdraw")
	}
	var res synto.DeliverResult
	res.Logf("withdrawn %d", amount)
	return &res, nil
}

func (h WithdrawHandler) validate(ctx synto.Context, db synto.KVStore, tx synto.Tx) (*WithdrawMsg, error) {
	m, err := loadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*WithdrawMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if !h.auth.HasAddress(ctx, msg.Signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signer")
	}
	escrow, err := loadEscrow(db, h.bank, msg.Escrow)
	if err != nil {
		return nil, err
	}
	if !escrow.Owner.Equals(msg.Signer) {
		return nil, errors.Wrapf(ErrNotTheOwner, "escrow belongs to %s", escrow.Owner)
	}
	return msg, nil
}
