package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/synto"
	syntod "github.com/iov-one/synto/cmd/syntod/app"
	"github.com/iov-one/synto/crypto"
	"github.com/spf13/pflag"
)

func writeTx(w io.Writer, tx *syntod.Tx) error {
	b, err := tx.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func readTx(r io.Reader) (*syntod.Tx, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no input data")
	}
	var tx syntod.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}

// keyFile is the layout written by keygen and by "syntod init".
type keyFile struct {
	Address synto.Address      `json:"address"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", path, err)
	}
	var key keyFile
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, fmt.Errorf("cannot decode %q file: %s", path, err)
	}
	if key.Secret == nil {
		return nil, fmt.Errorf("%q holds no secret", path)
	}
	return key.Secret, nil
}

// addressValue is a pflag.Value accepting every form ParseAddress does.
type addressValue struct {
	addr *synto.Address
}

var _ pflag.Value = addressValue{}

func flAddress(fl *pflag.FlagSet, name, usage string) *synto.Address {
	var addr synto.Address
	fl.Var(addressValue{addr: &addr}, name, usage)
	return &addr
}

func (v addressValue) String() string {
	if v.addr == nil || *v.addr == nil {
		return ""
	}
	return v.addr.String()
}

func (v addressValue) Set(s string) error {
	a, err := synto.ParseAddress(s)
	if err != nil {
		return err
	}
	*v.addr = a
	return nil
}

func (addressValue) Type() string {
	return "address"
}

// required fails with the name of the first empty address flag.
func required(fl *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if !fl.Changed(name) {
			return fmt.Errorf("--%s is required", name)
		}
	}
	return nil
}

func newFlagSet(usage string) *pflag.FlagSet {
	fl := pflag.NewFlagSet("", pflag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fl.PrintDefaults()
	}
	return fl
}

func tmAddrFlag(fl *pflag.FlagSet) *string {
	return fl.String("tm", env("SYNTOCLI_TM_ADDR", "http://localhost:26657"),
		"Tendermint node address. You can use SYNTOCLI_TM_ADDR environment variable to set it.")
}
