package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/synto/errors"
	"github.com/spf13/pflag"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, conf Config, logger log.Logger) (abci.Application, error)

// parseFlags applies the start flags on top of the stored configuration.
func parseFlags(conf Config, args []string) (Config, error) {
	flags := pflag.NewFlagSet("start", pflag.ContinueOnError)
	flags.StringVar(&conf.Bind, flagBind, conf.Bind, "address server listens on")
	flags.StringVar(&conf.Backend, flagBackend, conf.Backend, "state database, iavl or pebble")
	flags.BoolVar(&conf.Debug, flagDebug, conf.Debug, "call stack returned on error")
	if err := flags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, conf.Validate()
}

// StartCmd initializes the application, and runs the abci server until the
// process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := LoadConfig(home)
	if err != nil {
		return err
	}
	conf, err = parseFlags(conf, args)
	if err != nil {
		return err
	}

	// Generate the app in the proper dir
	app, err := gen(home, conf, logger)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	return Serve(app, conf.Bind, logger, quit)
}

// Serve runs the abci socket server for app until quit receives a value or
// is closed.
func Serve(app abci.Application, addr string, logger log.Logger, quit <-chan os.Signal) error {
	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInput, "starting server: %s", err)
	}

	sig := <-quit
	logger.Info("Stopping ABCI app", "signal", sig)
	return svr.Stop()
}
