package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/synto"
	syntod "github.com/iov-one/synto/cmd/syntod/app"
	"github.com/iov-one/synto/commands"
	"github.com/iov-one/synto/commands/server"
	"github.com/spf13/pflag"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".syntod")
	varHome = pflag.String(flagHome, defaultHome, "directory to store files under")

	pflag.CommandLine.Usage = helpMessage
	// command flags are parsed by each command
	pflag.CommandLine.SetInterspersed(false)
}

func helpMessage() {
	fmt.Println("syntod")
	fmt.Println("          Custodial fixed rate swap node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("testgen   Write example transactions to a directory")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  --home string
        directory to store files under (default "$HOME/.syntod")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "syntod")

	pflag.Parse()
	if pflag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := pflag.Arg(0)
	rest := pflag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(syntod.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(syntod.GenerateApp, logger, *varHome, rest)
	case "testgen":
		err = commands.TestGenCmd(syntod.Examples(), rest)
	case "version":
		fmt.Println(synto.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
