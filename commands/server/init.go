package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/synto/errors"
	"github.com/spf13/pflag"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagChainID = "chain-id"
	flagBackend = "backend"
)

// GenesisFile is the tendermint genesis, relative to the home dir.
var GenesisFile = filepath.Join("config", "genesis.json")

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd writes the app_state into the genesis file of the home dir and
// saves the node configuration.
//
// A genesis file written by `tendermint init` is kept and only gets its
// app_state replaced. Without one a minimal genesis is created.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	flags := pflag.NewFlagSet("init", pflag.ContinueOnError)
	chainID := flags.String(flagChainID, "", "chain id of a new genesis file")
	backend := flags.String(flagBackend, BackendIAVL, "state database, iavl or pebble")
	if err := flags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	conf, err := LoadConfig(home)
	if err != nil {
		return err
	}
	conf.Backend = *backend
	if err := os.MkdirAll(filepath.Join(home, filepath.Dir(GenesisFile)), 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := SaveConfig(home, conf); err != nil {
		return err
	}
	logger.Info("Saved node configuration", "path", filepath.Join(home, ConfigFile), "backend", conf.Backend)

	options, err := gen(flags.Args())
	if err != nil {
		return err
	}

	genFile := filepath.Join(home, GenesisFile)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return addGenesisOptions(genFile, options)
	}
	if *chainID == "" {
		*chainID = fmt.Sprintf("test-chain-%v", cmn.RandStr(6))
	}
	logger.Info("Generated genesis file", "path", genFile, "chain_id", *chainID)
	return writeGenesis(genFile, *chainID, options)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %s: %s", filename, err)
	}

	doc["app_state"] = options
	return saveGenesis(filename, doc)
}

func writeGenesis(filename, chainID string, options json.RawMessage) error {
	id, err := json.Marshal(chainID)
	if err != nil {
		return err
	}
	created, err := json.Marshal(time.Now().UTC())
	if err != nil {
		return err
	}
	doc := GenesisDoc{
		"chain_id":     id,
		"genesis_time": created,
		"app_state":    options,
	}
	return saveGenesis(filename, doc)
}

func saveGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return os.WriteFile(filename, out, 0600)
}
