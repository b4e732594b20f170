package client

import (
	"context"
	"fmt"

	"github.com/iov-one/synto"
	syntod "github.com/iov-one/synto/cmd/syntod/app"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/swap"
	"github.com/iov-one/synto/x/token"
)

// Wallet signs and commits instructions with a single key.
type Wallet struct {
	client  *Client
	key     *crypto.PrivateKey
	chainID string
}

// NewWallet reads the chain id from the node c is connected to.
func NewWallet(ctx context.Context, c *Client, key *crypto.PrivateKey) (*Wallet, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	return &Wallet{client: c, key: key, chainID: status.ChainID}, nil
}

// Address of the signing key.
func (w *Wallet) Address() synto.Address {
	return w.key.Address()
}

// Sign appends the signature of the wallet to tx, using the next nonce
// of the key on chain.
func (w *Wallet) Sign(tx *syntod.Tx) error {
	seq, err := w.client.NextNonce(w.Address())
	if err != nil {
		return errors.Wrap(err, "nonce")
	}
	return tx.Sign(w.key, w.chainID, seq)
}

// Execute signs ins and waits until it is in a block. A failed deliver is
// returned as the error.
func (w *Wallet) Execute(ctx context.Context, ins *synto.Instruction) (*CommitResult, error) {
	tx := &syntod.Tx{Instruction: ins}
	if err := w.Sign(tx); err != nil {
		return nil, err
	}
	res, err := w.client.CommitTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return res, errors.Wrapf(res.Err, "tx %s at height %d", res.ID, res.Height)
	}
	return res, nil
}

// InitializeEscrow creates the escrow owned by the wallet and returns it
// along with its address.
func (w *Wallet) InitializeEscrow(ctx context.Context) (synto.Address, *swap.Escrow, error) {
	ins, err := swap.NewInitializeInstruction(w.Address())
	if err != nil {
		return nil, nil, err
	}
	if _, err := w.Execute(ctx, ins); err != nil {
		return nil, nil, err
	}
	addr := ins.Accounts[0].Address
	escrow, err := w.client.Escrow(addr)
	if err != nil {
		return nil, nil, err
	}
	return addr, escrow, nil
}

// Deposit moves amount tokens of mint from the wallet into the vault of
// escrow and returns the escrow as stored afterwards.
func (w *Wallet) Deposit(ctx context.Context, escrow, mint synto.Address, amount uint64) (*swap.Escrow, error) {
	ins, err := swap.NewDepositInstruction(escrow, w.Address(), mint, amount)
	if err != nil {
		return nil, err
	}
	if _, err := w.Execute(ctx, ins); err != nil {
		return nil, err
	}
	return w.client.Escrow(escrow)
}

// SwapReceipt is what a committed swap reported.
type SwapReceipt struct {
	ID         TransactionID
	Height     int64
	TokensSent uint64
	// TokensLeft is the token balance of the escrow after the swap.
	TokensLeft uint64
}

// Swap pays lamports to escrow for tokens of mint.
func (w *Wallet) Swap(ctx context.Context, escrow, mint synto.Address, lamports uint64) (*SwapReceipt, error) {
	ins, err := swap.NewSwapInstruction(escrow, w.Address(), mint, lamports)
	if err != nil {
		return nil, err
	}
	res, err := w.Execute(ctx, ins)
	if err != nil {
		return nil, err
	}
	r := SwapReceipt{ID: res.ID, Height: res.Height}
	if _, err := fmt.Sscanf(res.Result.Log, "tokens sent %d\ntokens in escrow %d", &r.TokensSent, &r.TokensLeft); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "swap log %q: %s", res.Result.Log, err)
	}
	return &r, nil
}

// Withdraw moves the lamports above the rent reserve of escrow to the
// wallet and returns the withdrawn amount.
func (w *Wallet) Withdraw(ctx context.Context, escrow synto.Address) (uint64, error) {
	res, err := w.Execute(ctx, swap.NewWithdrawInstruction(escrow, w.Address()))
	if err != nil {
		return 0, err
	}
	var amount uint64
	if _, err := fmt.Sscanf(res.Result.Log, "withdrawn %d", &amount); err != nil {
		return 0, errors.Wrapf(errors.ErrState, "withdraw log %q: %s", res.Result.Log, err)
	}
	return amount, nil
}

// Transfer sends amount tokens of mint from the associated account of the
// wallet to the associated account of dest. The destination account must
// exist.
func (w *Wallet) Transfer(ctx context.Context, mint, dest synto.Address, amount uint64) error {
	source, _, err := token.AssociatedAddress(w.Address(), mint)
	if err != nil {
		return err
	}
	target, _, err := token.AssociatedAddress(dest, mint)
	if err != nil {
		return err
	}
	_, err = w.Execute(ctx, token.NewTransferInstruction(source, target, w.Address(), amount))
	return err
}
