package main

import (
	"context"
	"fmt"
	"io"

	"github.com/iov-one/synto/client"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Read a signed transaction from standard input and submit it. The command
returns once the transaction is in a block and writes out the log of the
program that ran it.

Make sure to collect enough signatures before submitting the transaction.
`)
	var (
		tmAddrFl = tmAddrFlag(fl)
	)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	res, err := client.NewHTTPClient(*tmAddrFl).CommitTx(context.Background(), tx)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction %s failed at height %d: %s", res.ID, res.Height, res.Err)
	}
	if res.Result.Log != "" {
		_, err = fmt.Fprintln(output, res.Result.Log)
	}
	return err
}
