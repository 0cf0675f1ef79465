package server

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagLogLevel = "log-level"
)

// Options are the arguments an application is generated with.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
	// Sink receives the events of every committed block.
	Sink piggybank.EventSink
}

// AppGenerator lets us lazily initialize app, using home dir and logger
// potentially initialized with other flags.
type AppGenerator func(*Options) (abci.Application, error)

type startFlags struct {
	bind     string
	debug    bool
	logLevel string
}

func parseFlags(args []string) (*startFlags, error) {
	var f startFlags
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&f.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	fs.BoolVar(&f.debug, flagDebug, false, "call stack returned on error")
	fs.StringVar(&f.logLevel, flagLogLevel, "", "overrides "+EnvLogLevel)
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &f, nil
}

// StartCmd initializes the application and runs the abci server until the
// process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	conf, err := LoadConfig(home)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		conf.LogLevel = flags.logLevel
	}
	if logger, err = conf.Logger(logger); err != nil {
		return err
	}

	sink, closeSink, err := conf.EventSink(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSink(); err != nil {
			logger.Error("cannot close event sink", "err", err)
		}
	}()

	// Generate the app in the proper dir
	app, err := gen(&Options{
		Home:   home,
		Logger: logger,
		Debug:  flags.debug,
		Sink:   sink,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", flags.bind, "events", conf.EventsDriver)

	svr, err := server.NewServer(flags.bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	// Wait until the node is stopped.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("Stopping ABCI app")
	return svr.Stop()
}
