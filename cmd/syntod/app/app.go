/*
Package app links together all the various components
to construct the syntod app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/app"
	"github.com/iov-one/synto/commands/server"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store/iavl"
	"github.com/iov-one/synto/store/pebble"
	"github.com/iov-one/synto/x"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/invoke"
	"github.com/iov-one/synto/x/sigs"
	"github.com/iov-one/synto/x/swap"
	"github.com/iov-one/synto/x/token"
	"github.com/iov-one/synto/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by abci Info.
const Name = "syntod"

// Authenticator returns the typical authentication,
// public key signatures and program derived signers
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, invoke.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// fees, logging, and recovery
func Chain(authFn x.Authenticator, banks bank.Controller) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		bank.NewFeeDecorator(authFn, banks),
		// on DeliverTx, bad tx will increment nonce and take fee
		// even if the instruction fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the system, token, associated
// token and swap programs.
func Router(authFn x.Authenticator, banks bank.Controller, tokens token.Controller) *app.Router {
	r := app.NewRouter()
	bank.RegisterRoutes(r, authFn, banks)
	token.RegisterRoutes(r, authFn, tokens)
	swap.RegisterRoutes(r, authFn, banks, tokens)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/accounts", "/auth", "/tokens/...", "/escrows"
func QueryRouter(banks bank.Controller, tokens token.Controller) synto.QueryRouter {
	r := synto.NewQueryRouter()
	r.RegisterAll(
		bank.RegisterQuery,
		sigs.RegisterQuery,
	)
	token.RegisterQuery(r, tokens)
	swap.RegisterQuery(r, banks)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() synto.Handler {
	authFn := Authenticator()
	banks := bank.NewController()
	tokens := token.NewController(authFn, banks)
	return Chain(authFn, banks).
		WithHandler(Router(authFn, banks, tokens))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h synto.Handler, tx synto.TxDecoder, kv synto.CommitKVStore, debug bool) app.BaseApp {
	banks := bank.NewController()
	tokens := token.NewController(Authenticator(), banks)
	store := app.NewStoreApp(name, kv, QueryRouter(banks, tokens), context.Background())
	store.WithInit(app.ChainInitializers(
		// bank first, token accounts pay their rent from its configuration
		bank.Initializer{},
		token.Initializer{},
	))
	return app.NewBaseApp(store, tx, h, debug)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path, using the configured backend.
func CommitKVStore(backend, dbPath string) (synto.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	switch backend {
	case server.BackendPebble:
		return pebble.Open(path, nil)
	case server.BackendIAVL:
		// Some external calls accidently add a ".db", which is now removed
		path = strings.TrimSuffix(path, filepath.Ext(path))
		return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown backend %q", backend)
	}
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, conf server.Config, logger log.Logger) (abci.Application, error) {
	kv, err := CommitKVStore(conf.Backend, conf.DBPath(home))
	if err != nil {
		return nil, err
	}
	application := Application(Name, Stack(), TxDecoder, kv, conf.Debug)
	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}
