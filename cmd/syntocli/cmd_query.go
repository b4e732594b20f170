package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/client"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(fmt.Sprintf(`
Read one entity from the chain and print it out as json.

  syntocli query <%s> --address <addr> [--mint <addr>]

The tokens query takes the wallet as address and prints its associated token
account for the mint.
`, strings.Join(availableQueries(), "|")))
	var (
		tmAddrFl = tmAddrFlag(fl)
		addrFl   = flAddress(fl, "address", "Address of the entity.")
		mintFl   = flAddress(fl, "mint", "Address of the token mint, for the tokens query.")
	)
	fl.Parse(args)

	if fl.NArg() != 1 {
		return fmt.Errorf("query type is required, one of %s", strings.Join(availableQueries(), ", "))
	}
	run, ok := queries[fl.Arg(0)]
	if !ok {
		return fmt.Errorf("unknown query %q, use one of %s", fl.Arg(0), strings.Join(availableQueries(), ", "))
	}
	if err := required(fl, "address"); err != nil {
		return err
	}
	if fl.Arg(0) == "tokens" {
		if err := required(fl, "mint"); err != nil {
			return err
		}
	}

	res, err := run(client.NewHTTPClient(*tmAddrFl), *addrFl, *mintFl)
	if err != nil {
		return fmt.Errorf("cannot query %s: %s", fl.Arg(0), err)
	}
	raw, err := json.MarshalIndent(res, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize result: %s", err)
	}
	_, err = output.Write(append(raw, '\n'))
	return err
}

var queries = map[string]func(c *client.Client, addr, mint synto.Address) (interface{}, error){
	"account": func(c *client.Client, addr, _ synto.Address) (interface{}, error) {
		return c.Account(addr)
	},
	"escrow": func(c *client.Client, addr, _ synto.Address) (interface{}, error) {
		return c.Escrow(addr)
	},
	"nonce": func(c *client.Client, addr, _ synto.Address) (interface{}, error) {
		return c.NextNonce(addr)
	},
	"tokens": func(c *client.Client, addr, mint synto.Address) (interface{}, error) {
		return c.TokenAccount(addr, mint)
	},
}

func availableQueries() []string {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
