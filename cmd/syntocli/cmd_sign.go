package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iov-one/synto/client"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content. The chain id and the nonce of the key are read from the node.
`)
	var (
		tmAddrFl  = tmAddrFlag(fl)
		keyPathFl = fl.String("key", env("SYNTOCLI_PRIV_KEY", ""),
			"Path to the private key file that transaction should be signed with. You can use SYNTOCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if *keyPathFl == "" {
		return errors.New("private key is required")
	}
	key, err := readKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	tx, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	wallet, err := client.NewWallet(context.Background(), client.NewHTTPClient(*tmAddrFl), key)
	if err != nil {
		return fmt.Errorf("cannot connect: %s", err)
	}
	if err := wallet.Sign(tx); err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	return writeTx(output, tx)
}
