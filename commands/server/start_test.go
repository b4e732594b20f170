package server

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestParseFlags(t *testing.T) {
	conf, err := parseFlags(DefaultConfig(), []string{"--bind", "tcp://127.0.0.1:36658", "--debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://127.0.0.1:36658", conf.Bind)
	assert.True(t, conf.Debug)
	assert.Equal(t, BackendIAVL, conf.Backend)

	_, err = parseFlags(DefaultConfig(), []string{"--backend", "memdb"})
	assert.Error(t, err)
	_, err = parseFlags(DefaultConfig(), []string{"--unknown"})
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	quit := make(chan os.Signal)
	done := make(chan error, 1)
	go func() {
		done <- Serve(abci.NewBaseApplication(), "tcp://127.0.0.1:36659", log.NewNopLogger(), quit)
	}()

	time.Sleep(200 * time.Millisecond)
	close(quit)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartCmdStopsOnGeneratorError(t *testing.T) {
	home := t.TempDir()
	gen := func(string, Config, log.Logger) (abci.Application, error) {
		return nil, os.ErrNotExist
	}
	require.NoError(t, InitCmd(func([]string) (json.RawMessage, error) {
		return json.RawMessage(`{}`), nil
	}, log.NewNopLogger(), home, nil))
	err := StartCmd(gen, log.NewNopLogger(), home, nil)
	assert.Equal(t, os.ErrNotExist, err)
}
