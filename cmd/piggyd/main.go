package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/cmd/piggyd/app"
	"github.com/iov-one/piggybank/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".piggyd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("piggyd")
	fmt.Println("          Piggy bank node: token ledger, savings goals and time locked vaults")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Validate the app_state of genesis files")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.piggyd")

start flags:
  -bind string       address server listens on (default "tcp://localhost:26658")
  -debug             call stack returned on error
  -log-level string  overrides PIGGYD_LOG_LEVEL

Environment (can be set in $HOME/.piggyd/.env):
  PIGGYD_LOG_LEVEL       debug, info, error or none (default "info")
  PIGGYD_EVENTS_DRIVER   sqlite or pgx, store committed events in a database
  PIGGYD_EVENTS_DSN      data source of the events database`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "piggy")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "version":
		fmt.Println(piggybank.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
