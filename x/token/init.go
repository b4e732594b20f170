package token

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/bank"
)

const optKey = "token"

// GenesisBalance is an associated account created at genesis.
type GenesisBalance struct {
	Wallet synto.Address `json:"wallet"`
	Amount uint64        `json:"amount"`
}

// GenesisMint is a mint created at genesis, together with its holders.
type GenesisMint struct {
	Address         synto.Address    `json:"address"`
	Decimals        uint8            `json:"decimals"`
	MintAuthority   synto.Address    `json:"mint_authority,omitempty"`
	FreezeAuthority synto.Address    `json:"freeze_authority,omitempty"`
	Balances        []GenesisBalance `json:"balances"`
}

// Genesis is the token section of the genesis file.
type Genesis struct {
	Mints []GenesisMint `json:"mints"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ synto.Initializer = Initializer{}

// FromGenesis creates the mints and their associated accounts. Accounts are
// created rent exempt, the lamports are issued with them.
func (Initializer) FromGenesis(opts synto.Options, db synto.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	rent, err := bank.LoadRent(db)
	if err != nil {
		return err
	}
	accounts := bank.NewBucket()

	for i, gm := range gen.Mints {
		if err := gm.Address.Validate(); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
		mint := Mint{
			MintAuthority:   gm.MintAuthority,
			Decimals:        gm.Decimals,
			IsInitialized:   true,
			FreezeAuthority: gm.FreezeAuthority,
		}
		for _, b := range gm.Balances {
			addr, _, err := AssociatedAddress(b.Wallet, gm.Address)
			if err != nil {
				return errors.Wrapf(err, "mint %d wallet %s", i, b.Wallet)
			}
			if mint.Supply+b.Amount < mint.Supply {
				return errors.Wrapf(errors.ErrOverflow, "mint %d supply", i)
			}
			mint.Supply += b.Amount
			acct := TokenAccount{Mint: gm.Address, Owner: b.Wallet, Amount: b.Amount, State: StateInitialized}
			if err := saveGenesis(db, accounts, addr, &acct, rent.MinimumBalance(AccountSize)); err != nil {
				return errors.Wrapf(err, "mint %d wallet %s", i, b.Wallet)
			}
		}
		if err := saveGenesis(db, accounts, gm.Address, &mint, rent.MinimumBalance(MintSize)); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
	}
	return nil
}

func saveGenesis(db synto.KVStore, b bank.Bucket, addr synto.Address, m synto.Marshaller, lamports uint64) error {
	has, err := b.Has(db, addr)
	if err != nil {
		return err
	}
	if has {
		return errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return b.Save(db, addr, &bank.Account{Lamports: lamports, Owner: ProgramID, Data: data})
}
