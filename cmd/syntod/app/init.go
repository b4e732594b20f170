package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/token"
)

// Genesis amounts of the development setup.
const (
	DevLamports     = 1000000000000
	DevTokenBalance = 5000000000
	DevDecimals     = 6
)

type genesisConf struct {
	Bank bank.Configuration `json:"bank"`
}

type genesis struct {
	Conf  genesisConf           `json:"conf"`
	Bank  []bank.GenesisAccount `json:"bank"`
	Token token.Genesis         `json:"token"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The first argument may name the wallet, otherwise a key is generated and
// printed. The wallet collects the fees, holds the lamports and is the
// authority of a new 6 decimals mint which it holds a balance of.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var wallet synto.Address
	if len(args) > 0 {
		addr, err := synto.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		wallet = addr
	} else {
		// if no address provided, auto-generate one
		// and print out the key
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		wallet = addr
		fmt.Println(keys)
	}
	mint := crypto.GenPrivateKey().Address()

	gen := genesis{
		Conf: genesisConf{Bank: bank.DefaultConfiguration(wallet)},
		Bank: []bank.GenesisAccount{
			{Address: wallet, Lamports: DevLamports},
		},
		Token: token.Genesis{
			Mints: []token.GenesisMint{{
				Address:       mint,
				Decimals:      DevDecimals,
				MintAuthority: wallet,
				Balances: []token.GenesisBalance{
					{Wallet: wallet, Amount: DevTokenBalance},
				},
			}},
		},
	}
	return json.MarshalIndent(gen, "", "  ")
}

type output struct {
	Address synto.Address      `json:"address"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a new key, along with a json
// representation of it. You can give lamports to this address and import
// the key in a client to use them.
func GenerateCoinKey() (synto.Address, string, error) {
	key := crypto.GenPrivateKey()
	out := output{Address: key.Address(), Secret: key}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return key.Address(), string(keys), nil
}
