package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/iov-one/synto"
	syntod "github.com/iov-one/synto/cmd/syntod/app"
	"github.com/iov-one/synto/commands/server"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	cfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/libs/log"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
	tm "github.com/tendermint/tendermint/types"
)

const (
	faucetLamports = 1000000000000
	faucetTokens   = 5000000
)

// useful values for test cases
var (
	node    *nm.Node
	chainID string
	faucet  *crypto.PrivateKey
	mint    synto.Address
)

func TestMain(m *testing.M) {
	faucet = crypto.GenPrivateKey()
	mint = crypto.GenPrivateKey().Address()

	config := rpctest.GetConfig()
	config.Moniker = "SyntoClientTest"
	// index every tag, so transactions can be searched by hash
	config.TxIndex.IndexTags = ""
	config.TxIndex.IndexAllTags = true

	app, err := initApp(config)
	if err != nil {
		fmt.Printf("Failed to set up the app: %s\n", err)
		os.Exit(1)
	}

	// run the app inside a tendermint instance
	node = rpctest.StartTendermint(app)

	// make sure tendermint is good to go before tests
	fmt.Println("Wait for first block...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_, err = NewLocalClient(node).WaitForNextBlock(ctx)
	cancel()

	// Run tests if tendermint started properly
	var code int
	if err == nil {
		code = m.Run()
	} else {
		fmt.Printf("Failed to start tendermint: %s\n", err)
		code = 1
	}

	// and shut down proper at the end
	_ = node.Stop()
	node.Wait()
	os.Exit(code)
}

func initApp(config *cfg.Config) (abci.Application, error) {
	conf := server.DefaultConfig()
	app, err := syntod.GenerateApp(config.RootDir, conf, log.NewNopLogger())
	if err != nil {
		return nil, err
	}
	return app, initGenesis(config.GenesisFile())
}

func initGenesis(filename string) error {
	doc, err := tm.GenesisDocFromFile(filename)
	if err != nil {
		return err
	}
	chainID = doc.ChainID

	addr := faucet.Address()
	appState, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"bank": bank.DefaultConfiguration(addr),
		},
		"bank": []bank.GenesisAccount{
			{Address: addr, Lamports: faucetLamports},
		},
		"token": token.Genesis{
			Mints: []token.GenesisMint{{
				Address:  mint,
				Decimals: 6,
				Balances: []token.GenesisBalance{
					{Wallet: addr, Amount: faucetTokens},
				},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("serialize state: %s", err)
	}
	doc.AppState = appState
	return doc.SaveAs(filename)
}

func timeoutCtx() (context.Context, func()) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
