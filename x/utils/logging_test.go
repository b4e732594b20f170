package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := synto.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &syntotest.Tx{Msg: &syntotest.Msg{RoutePath: "program/swap"}}

	h := &syntotest.Handler{DeliverResult: synto.DeliverResult{Log: "swapped"}}
	_, err := NewLogging().Deliver(ctx, db, tx, h)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "swapped")
	assert.Contains(t, buf.String(), "path=program/swap")

	buf.Reset()
	h = &syntotest.Handler{DeliverErr: errors.ErrRent}
	_, err = NewLogging().Deliver(ctx, db, tx, h)
	assert.True(t, errors.ErrRent.Is(err))
	assert.Contains(t, buf.String(), "err=")
}
