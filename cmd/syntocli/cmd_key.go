package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/synto/crypto"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Generate a new private key.

When successful a new file is created holding the key and its address as
json. This command fails if the key file already exists.
`)
	var (
		keyPathFl = fl.String("key", env("SYNTOCLI_PRIV_KEY", os.Getenv("HOME")+"/.syntocli.key.json"),
			"Path to the private key file. You can use SYNTOCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite a key. The user must delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key := crypto.GenPrivateKey()
	raw, err := json.MarshalIndent(keyFile{Address: key.Address(), Secret: key}, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize key: %s", err)
	}
	if err := os.WriteFile(*keyPathFl, raw, 0600); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	_, err = fmt.Fprintln(output, key.Address())
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Print out the address associated with your private key.
`)
	var (
		keyPathFl = fl.String("key", env("SYNTOCLI_PRIV_KEY", os.Getenv("HOME")+"/.syntocli.key.json"),
			"Path to the private key file. You can use SYNTOCLI_PRIV_KEY environment variable to set it.")
		hrpFl = fl.String("bech32", "", "Print the bech32 form of the address with this prefix.")
	)
	fl.Parse(args)

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	if *hrpFl == "" {
		_, err = fmt.Fprintln(output, key.Address())
		return err
	}
	s, err := key.Address().Bech32(*hrpFl)
	if err != nil {
		return fmt.Errorf("cannot encode address: %s", err)
	}
	_, err = fmt.Fprintln(output, s)
	return err
}
