package app

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx, CheckTx, and BeginBlock
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder synto.TxDecoder
	handler synto.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder synto.TxDecoder,
	handler synto.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return synto.DeliverTxError(err, b.debug)
	}

	// ignore error here, allow it to be logged
	ctx := synto.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", synto.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return synto.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return synto.CheckTxError(err, b.debug)
	}

	ctx := synto.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", synto.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return synto.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx synto.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
