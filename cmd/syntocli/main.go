package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// commands maps the first argument to the command it runs. Each command
// reads from input, writes to output, and parses its own flags from args.
//
// Building, signing, and submitting a transaction are separate commands
// that are combined with a pipe:
//
//   $ syntocli swap --escrow <addr> --mint <addr> --lamports 1000000 \
//       | syntocli sign --key alice.json \
//       | syntocli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"deposit":    cmdDeposit,
	"initialize": cmdInitialize,
	"keyaddr":    cmdKeyaddr,
	"keygen":     cmdKeygen,
	"query":      cmdQuery,
	"sign":       cmdSignTransaction,
	"submit":     cmdSubmitTransaction,
	"swap":       cmdSwap,
	"transfer":   cmdTransfer,
	"view":       cmdTransactionView,
	"withdraw":   cmdWithdraw,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the syntod application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> --help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
