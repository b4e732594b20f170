package bank

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
)

// Controller is the functionality needed by other programs to move native
// currency and manage the accounts they own.
type Controller interface {
	// Account returns the account at addr. ErrNotFound if there is none.
	Account(db synto.ReadOnlyKVStore, addr synto.Address) (*Account, error)
	// Balance returns the lamports held at addr, zero for unknown
	// accounts.
	Balance(db synto.ReadOnlyKVStore, addr synto.Address) (uint64, error)
	// Transfer moves lamports from an account owned by program.
	Transfer(db synto.KVStore, program, from, to synto.Address, lamports uint64) error
	// CreateAccount allocates space bytes at addr for owner, funding
	// the rent exempt reserve from payer.
	CreateAccount(db synto.KVStore, payer, addr, owner synto.Address, space int) (*Account, error)
	// Store overwrites the data of an account owned by program.
	Store(db synto.KVStore, program, addr synto.Address, data []byte) error
	// Rent returns the current rent parameters.
	Rent(db synto.ReadOnlyKVStore) (Rent, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default account bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Account(db synto.ReadOnlyKVStore, addr synto.Address) (*Account, error) {
	a, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	return a, nil
}

func (c BaseController) Balance(db synto.ReadOnlyKVStore, addr synto.Address) (uint64, error) {
	a, err := c.bucket.Get(db, addr)
	if err != nil || a == nil {
		return 0, err
	}
	return a.Lamports, nil
}

func (c BaseController) Rent(db synto.ReadOnlyKVStore) (Rent, error) {
	return LoadRent(db)
}

// Transfer moves lamports from one account to another. Only the owner
// program of the source account may debit it.
//
// An account holding data cannot drop below its rent exempt reserve. It can
// only be emptied, which purges it.
func (c BaseController) Transfer(db synto.KVStore, program, from, to synto.Address, lamports uint64) error {
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if lamports == 0 {
		return nil
	}

	sender, err := c.bucket.Get(db, from)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s has no lamports", from)
	}
	if !sender.Owner.Equals(program) {
		return errors.Wrapf(errors.ErrOwner, "%s is not owned by %s", from, program)
	}
	if sender.Lamports < lamports {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, need %d", from, sender.Lamports, lamports)
	}
	remaining := sender.Lamports - lamports
	if len(sender.Data) != 0 && remaining != 0 {
		rent, err := c.Rent(db)
		if err != nil {
			return err
		}
		if min := rent.MinimumBalance(len(sender.Data)); remaining < min {
			return errors.Wrapf(errors.ErrRent, "%s would keep %d of %d", from, remaining, min)
		}
	}
	if from.Equals(to) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, to)
	if err != nil {
		return err
	}
	if recipient.Lamports+lamports < recipient.Lamports {
		return errors.Wrapf(errors.ErrOverflow, "%s balance", to)
	}
	sender.Lamports = remaining
	recipient.Lamports += lamports

	if err := c.bucket.Save(db, from, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, to, recipient)
}

// CreateAccount allocates a zeroed data blob of given size at addr and
// assigns the account to owner. The payer tops the account up to its rent
// exempt reserve. An address already holding lamports, and nothing else, can
// be allocated; one that holds data or was assigned to a program is in use.
func (c BaseController) CreateAccount(db synto.KVStore, payer, addr, owner synto.Address, space int) (*Account, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if space < 0 {
		return nil, errors.Wrap(errors.ErrInput, "negative space")
	}
	if payer.Equals(addr) {
		return nil, errors.Wrap(errors.ErrInput, "account cannot fund itself")
	}
	acct, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return nil, err
	}
	if !acct.IsSystem() {
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s already in use", addr)
	}

	rent, err := c.Rent(db)
	if err != nil {
		return nil, err
	}
	if min := rent.MinimumBalance(space); acct.Lamports < min {
		need := min - acct.Lamports
		funds, err := c.Balance(db, payer)
		if err != nil {
			return nil, err
		}
		if funds < need {
			return nil, errors.Wrapf(errors.ErrRent, "payer %s holds %d, need %d", payer, funds, need)
		}
		if err := c.Transfer(db, SystemProgramID, payer, addr, need); err != nil {
			return nil, errors.Wrap(err, "fund rent")
		}
		acct.Lamports = min
	}
	acct.Owner = owner
	acct.Data = make([]byte, space)
	if err := c.bucket.Save(db, addr, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Store overwrites the data of an account. The account size is fixed at
// creation.
func (c BaseController) Store(db synto.KVStore, program, addr synto.Address, data []byte) error {
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if !acct.Owner.Equals(program) {
		return errors.Wrapf(errors.ErrOwner, "%s is not owned by %s", addr, program)
	}
	if len(data) != len(acct.Data) {
		return errors.Wrapf(errors.ErrInput, "account %s holds %d bytes, got %d", addr, len(acct.Data), len(data))
	}
	acct.Data = append(acct.Data[:0], data...)
	return c.bucket.Save(db, addr, acct)
}

// Credit issues new lamports to addr. It is used by the genesis only.
func (c BaseController) Credit(db synto.KVStore, addr synto.Address, lamports uint64) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	acct, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return err
	}
	if acct.Lamports+lamports < acct.Lamports {
		return errors.Wrapf(errors.ErrOverflow, "%s balance", addr)
	}
	acct.Lamports += lamports
	return c.bucket.Save(db, addr, acct)
}

// SystemTransfer moves lamports out of a wallet. The wallet must have signed.
func SystemTransfer(ctx synto.Context, db synto.KVStore, auth x.Authenticator, ctrl Controller, from, to synto.Address, lamports uint64) error {
	if !auth.HasAddress(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", from)
	}
	return ctrl.Transfer(db, SystemProgramID, from, to, lamports)
}
