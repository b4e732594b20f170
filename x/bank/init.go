package bank

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/gconf"
)

const optKey = "bank"

// GenesisAccount is used to parse the json from genesis file
type GenesisAccount struct {
	Address  synto.Address `json:"address"`
	Lamports uint64        `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ synto.Initializer = Initializer{}

// FromGenesis credits the initial wallets and saves the configuration, if
// one is provided.
func (Initializer) FromGenesis(opts synto.Options, db synto.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, configPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := ctrl.Credit(db, acct.Address, acct.Lamports); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
