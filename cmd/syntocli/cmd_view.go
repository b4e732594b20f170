package main

import (
	"encoding/json"
	"fmt"
	"io"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Read a transaction from standard input and print it out in a human readable
form.
`)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}
	raw, err := json.MarshalIndent(tx, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = output.Write(append(raw, '\n'))
	return err
}
