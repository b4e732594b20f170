package token

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
	"github.com/iov-one/synto/x/bank"
)

// Controller is the token program functionality other programs can invoke.
type Controller interface {
	// Mint loads an initialized mint.
	Mint(db synto.ReadOnlyKVStore, addr synto.Address) (*Mint, error)
	// Account loads an initialized token account.
	Account(db synto.ReadOnlyKVStore, addr synto.Address) (*TokenAccount, error)
	// CreateAssociated creates the associated token account of wallet
	// for mint, funded by payer.
	CreateAssociated(ctx synto.Context, db synto.KVStore, payer, wallet, mint synto.Address) (synto.Address, error)
	// EnsureAssociated is CreateAssociated that accepts an existing,
	// valid account.
	EnsureAssociated(ctx synto.Context, db synto.KVStore, payer, wallet, mint synto.Address) (synto.Address, error)
	// Transfer moves amount tokens. Authority must own the source and
	// have signed.
	Transfer(ctx synto.Context, db synto.KVStore, source, dest, authority synto.Address, amount uint64) error
	// MintTo issues new tokens. Authority must be the mint authority.
	MintTo(ctx synto.Context, db synto.KVStore, mint, dest, authority synto.Address, amount uint64) error
	// SetFrozen freezes or thaws an account. Authority must be the
	// freeze authority of the mint.
	SetFrozen(ctx synto.Context, db synto.KVStore, account, mint, authority synto.Address, frozen bool) error
}

// BaseController stores mints and token accounts as bank accounts owned by
// ProgramID.
type BaseController struct {
	auth x.Authenticator
	bank bank.Controller
}

var _ Controller = BaseController{}

// NewController returns a controller authorizing with auth.
func NewController(auth x.Authenticator, bank bank.Controller) BaseController {
	return BaseController{auth: auth, bank: bank}
}

func (c BaseController) raw(db synto.ReadOnlyKVStore, addr synto.Address) ([]byte, error) {
	acct, err := c.bank.Account(db, addr)
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(ProgramID) {
		return nil, errors.Wrapf(errors.ErrOwner, "%s is not a token program account", addr)
	}
	return acct.Data, nil
}

func (c BaseController) Mint(db synto.ReadOnlyKVStore, addr synto.Address) (*Mint, error) {
	data, err := c.raw(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	var m Mint
	if err := m.Unmarshal(data); err != nil {
		return nil, err
	}
	if !m.IsInitialized {
		return nil, errors.Wrapf(ErrUninitialized, "mint %s", addr)
	}
	return &m, nil
}

func (c BaseController) Account(db synto.ReadOnlyKVStore, addr synto.Address) (*TokenAccount, error) {
	data, err := c.raw(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "token account")
	}
	var a TokenAccount
	if err := a.Unmarshal(data); err != nil {
		return nil, err
	}
	if a.State == StateUninitialized {
		return nil, errors.Wrapf(ErrUninitialized, "token account %s", addr)
	}
	return &a, nil
}

func (c BaseController) save(db synto.KVStore, addr synto.Address, m synto.Marshaller) error {
	raw, err := m.Marshal()
	if err != nil {
		return err
	}
	return c.bank.Store(db, ProgramID, addr, raw)
}

func (c BaseController) CreateAssociated(ctx synto.Context, db synto.KVStore, payer, wallet, mint synto.Address) (synto.Address, error) {
	if !c.auth.HasAddress(ctx, payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}
	addr, _, err := AssociatedAddress(wallet, mint)
	if err != nil {
		return nil, err
	}
	if _, err := c.bank.CreateAccount(db, payer, addr, ProgramID, AccountSize); err != nil {
		return nil, errors.Wrap(err, "create associated account")
	}
	acct := TokenAccount{Mint: mint, Owner: wallet, State: StateInitialized}
	if err := c.save(db, addr, &acct); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c BaseController) EnsureAssociated(ctx synto.Context, db synto.KVStore, payer, wallet, mint synto.Address) (synto.Address, error) {
	addr, _, err := AssociatedAddress(wallet, mint)
	if err != nil {
		return nil, err
	}
	switch acct, err := c.Account(db, addr); {
	case err == nil:
		if !acct.Mint.Equals(mint) {
			return nil, errors.Wrapf(ErrMintMismatch, "associated account %s", addr)
		}
		if !acct.Owner.Equals(wallet) {
			return nil, errors.Wrapf(ErrOwnerMismatch, "associated account %s", addr)
		}
		return addr, nil
	case errors.ErrNotFound.Is(err), errors.ErrOwner.Is(err):
		// An address holding only lamports can still be allocated.
		return c.CreateAssociated(ctx, db, payer, wallet, mint)
	default:
		return nil, err
	}
}

func (c BaseController) Transfer(ctx synto.Context, db synto.KVStore, source, dest, authority synto.Address, amount uint64) error {
	src, err := c.Account(db, source)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.IsFrozen() || dst.IsFrozen() {
		return errors.Wrap(ErrFrozen, "transfer")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(ErrMintMismatch, "%s and %s", source, dest)
	}
	if !src.Owner.Equals(authority) {
		return errors.Wrapf(ErrOwnerMismatch, "%s is not the owner of %s", authority, source)
	}
	if !c.auth.HasAddress(ctx, authority) {
		return errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, need %d", source, src.Amount, amount)
	}
	if source.Equals(dest) {
		return nil
	}
	if dst.Amount+amount < dst.Amount {
		return errors.Wrapf(errors.ErrOverflow, "%s amount", dest)
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := c.save(db, source, src); err != nil {
		return err
	}
	return c.save(db, dest, dst)
}

func (c BaseController) MintTo(ctx synto.Context, db synto.KVStore, mint, dest, authority synto.Address, amount uint64) error {
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	dst, err := c.Account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if dst.IsFrozen() {
		return errors.Wrap(ErrFrozen, "destination")
	}
	if !dst.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "%s", dest)
	}
	if len(m.MintAuthority) == 0 {
		return errors.Wrap(errors.ErrImmutable, "fixed supply")
	}
	if !m.MintAuthority.Equals(authority) {
		return errors.Wrapf(ErrOwnerMismatch, "%s is not the mint authority", authority)
	}
	if !c.auth.HasAddress(ctx, authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	if m.Supply+amount < m.Supply {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	m.Supply += amount
	dst.Amount += amount
	if err := c.save(db, mint, m); err != nil {
		return err
	}
	return c.save(db, dest, dst)
}

func (c BaseController) SetFrozen(ctx synto.Context, db synto.KVStore, account, mint, authority synto.Address, frozen bool) error {
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	acct, err := c.Account(db, account)
	if err != nil {
		return err
	}
	if !acct.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "%s", account)
	}
	if len(m.FreezeAuthority) == 0 {
		return errors.Wrap(errors.ErrImmutable, "mint cannot freeze")
	}
	if !m.FreezeAuthority.Equals(authority) {
		return errors.Wrapf(ErrOwnerMismatch, "%s is not the freeze authority", authority)
	}
	if !c.auth.HasAddress(ctx, authority) {
		return errors.Wrap(errors.ErrUnauthorized, "freeze authority signature missing")
	}
	if acct.IsFrozen() == frozen {
		return errors.Wrap(errors.ErrState, "account already in requested state")
	}
	if frozen {
		acct.State = StateFrozen
	} else {
		acct.State = StateInitialized
	}
	return c.save(db, account, acct)
}
