/*
Package client submits synto transactions to a tendermint node and reads
back the swap, bank, and token state of the chain.
*/
package client

import (
	"context"
	"time"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	nm "github.com/tendermint/tendermint/node"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"
)

// blockPoll is how often WaitForHeight asks the node for a new block.
const blockPoll = 200 * time.Millisecond

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// RequestQuery mirrors the abci query request.
type RequestQuery = abci.RequestQuery

// ResponseQuery mirrors the abci query response.
type ResponseQuery = abci.ResponseQuery

// Header is a tendermint block header
type Header = tmtypes.Header

// CommitResult is returned from the block (DeliverTx)
// Result is only set on success codes, Err is set if it was a failure code
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *synto.DeliverResult
	Err    error
}

// Status is the current status of the node we connect to.
type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}

// Client is a tendermint client wrapped to provide simple access to the
// synto transactions and state.
type Client struct {
	conn rpcclient.Client
}

// NewClient wraps a Client around an existing tendermint client connection.
func NewClient(conn rpcclient.Client) *Client {
	return &Client{conn: conn}
}

// NewLocalConnection talks to a node running in this process.
func NewLocalConnection(node *nm.Node) rpcclient.Client {
	return rpcclient.NewLocal(node)
}

// NewHTTPConnection talks to the rpc address of a node, for example
// tcp://localhost:26657.
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// NewLocalClient is a Client over NewLocalConnection.
func NewLocalClient(node *nm.Node) *Client {
	return NewClient(NewLocalConnection(node))
}

// NewHTTPClient is a Client over NewHTTPConnection.
func NewHTTPClient(remote string) *Client {
	return NewClient(NewHTTPConnection(remote))
}

// Status returns current height and other (subjective) status info from this node
func (c *Client) Status(ctx context.Context) (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(ErrNetwork, "status: %s", err.Error())
	}
	return &Status{
		ChainID:    status.NodeInfo.Network,
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// Header returns the block header at the given height.
// Returns an error if no header exists yet for that height
func (c *Client) Header(ctx context.Context, height int64) (*Header, error) {
	info, err := c.conn.BlockchainInfo(height, height)
	if err != nil {
		return nil, errors.Wrapf(ErrNetwork, "header: %s", err.Error())
	}
	if len(info.BlockMetas) == 0 {
		return nil, errors.Wrapf(errors.ErrInput, "no headers for height %d", height)
	}
	return &info.BlockMetas[0].Header, nil
}

// SubmitTx puts the tx in the mempool and returns without waiting for
// a block. A failed check is returned as the error.
func (c *Client) SubmitTx(ctx context.Context, tx synto.Marshaller) (TransactionID, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err.Error())
	}
	res, err := c.conn.BroadcastTxSync(bz)
	if err != nil {
		return nil, errors.Wrapf(ErrNetwork, "submit tx: %s", err.Error())
	}
	if res.Code != 0 {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// CommitTx blocks until the tx is in a block. A failed check is returned
// as the error. A failed deliver is reported in CommitResult.Err, as the
// fee was charged and the tx is part of the chain.
func (c *Client) CommitTx(ctx context.Context, tx synto.Marshaller) (*CommitResult, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err.Error())
	}
	res, err := c.conn.BroadcastTxCommit(bz)
	if err != nil {
		return nil, errors.Wrapf(ErrNetwork, "commit tx: %s", err.Error())
	}
	if res.CheckTx.Code != 0 {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	result, err := synto.ParseDeliverOrError(res.DeliverTx)
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Result: result,
		Err:    err,
	}, nil
}

// GetTxByID returns the result of a committed transaction.
func (c *Client) GetTxByID(ctx context.Context, id TransactionID) (*CommitResult, error) {
	tx, err := c.conn.Tx(id, false)
	if err != nil {
		return nil, errors.Wrapf(ErrNetwork, "get tx: %s", err.Error())
	}
	res, err := synto.ParseDeliverOrError(tx.TxResult)
	return &CommitResult{
		ID:     tx.Hash,
		Height: tx.Height,
		Result: res,
		Err:    err,
	}, nil
}

// Query mirrors the abci query interface exactly. This gives us state from
// the application.
func (c *Client) Query(query RequestQuery) ResponseQuery {
	res, err := c.conn.ABCIQueryWithOptions(query.Path, query.Data, rpcclient.ABCIQueryOptions{Height: query.Height, Prove: query.Prove})
	// network error reported as special error code
	if err != nil {
		code, log := errors.ABCIInfo(errors.Wrap(ErrNetwork, err.Error()), false)
		return ResponseQuery{
			Code: code,
			Log:  log,
		}
	}
	return res.Response
}

// WaitForHeight returns the latest header once the chain reached height.
// Cancel the context to stop waiting.
func (c *Client) WaitForHeight(ctx context.Context, height int64) (*Header, error) {
	ticker := time.NewTicker(blockPoll)
	defer ticker.Stop()
	for {
		status, err := c.Status(ctx)
		if err != nil {
			return nil, err
		}
		if status.Height >= height {
			return c.Header(ctx, status.Height)
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ErrTimeout, "waiting for height %d", height)
		case <-ticker.C:
		}
	}
}

// WaitForNextBlock returns the header of the block after the current one.
func (c *Client) WaitForNextBlock(ctx context.Context) (*Header, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	return c.WaitForHeight(ctx, status.Height+1)
}
