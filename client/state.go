package client

import (
	"bytes"
	"context"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/app"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/sigs"
	"github.com/iov-one/synto/x/swap"
	"github.com/iov-one/synto/x/token"
)

// QueryModels runs a query and joins the returned keys and values.
func (c *Client) QueryModels(path string, data []byte) ([]synto.Model, error) {
	res := c.Query(RequestQuery{Path: path, Data: data})
	if res.Code != 0 {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads the single value stored under data into dest. ErrNotFound
// is returned if there is none.
func (c *Client) queryOne(path string, data []byte, dest synto.Persistent) error {
	models, err := c.QueryModels(path, data)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s %s", path, synto.Address(data))
	}
	if err := dest.Unmarshal(models[0].Value); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// Account returns the lamports, owner, and data held at addr.
func (c *Client) Account(addr synto.Address) (*bank.Account, error) {
	var acct bank.Account
	if err := c.queryOne("/accounts", addr, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// NextNonce returns the sequence the next signature of signer must use.
// An address that never signed starts at zero.
func (c *Client) NextNonce(signer synto.Address) (int64, error) {
	var user sigs.UserData
	switch err := c.queryOne("/auth", signer, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Escrow returns the swap escrow record stored at addr.
func (c *Client) Escrow(addr synto.Address) (*swap.Escrow, error) {
	var escrow swap.Escrow
	if err := c.queryOne("/escrows", addr, &escrow); err != nil {
		return nil, err
	}
	return &escrow, nil
}

// TokenAccount returns the associated token account of wallet for mint.
func (c *Client) TokenAccount(wallet, mint synto.Address) (*token.TokenAccount, error) {
	addr, _, err := token.AssociatedAddress(wallet, mint)
	if err != nil {
		return nil, err
	}
	var acct token.TokenAccount
	if err := c.queryOne("/tokens/accounts", addr, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// WatchEscrow calls fn with the escrow at addr once now and then after
// every block that changed it, until fn returns false or ctx is done. An
// escrow that does not exist yet is passed as nil.
func (c *Client) WatchEscrow(ctx context.Context, addr synto.Address, fn func(*swap.Escrow) bool) error {
	status, err := c.Status(ctx)
	if err != nil {
		return err
	}
	var last []byte
	for height := status.Height; ; height++ {
		escrow, err := c.Escrow(addr)
		switch {
		case errors.ErrNotFound.Is(err):
		case err != nil:
			return err
		}
		var raw []byte
		if escrow != nil {
			if raw, err = escrow.Marshal(); err != nil {
				return err
			}
		}
		if height == status.Height || !bytes.Equal(raw, last) {
			if !fn(escrow) {
				return nil
			}
		}
		last = raw
		if _, err := c.WaitForHeight(ctx, height+1); err != nil {
			return err
		}
	}
}
