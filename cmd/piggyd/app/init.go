package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/commands/server"
	"github.com/iov-one/piggybank/crypto"
	"github.com/iov-one/piggybank/x/cash"
	"github.com/iov-one/piggybank/x/goal"
	"github.com/iov-one/piggybank/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
)

// genesisState is the app_state written by GenInitOptions.
type genesisState struct {
	Cash  []cash.GenesisAccount `json:"cash"`
	Token *token.Genesis        `json:"token"`
	Goals goal.Genesis          `json:"goals"`
}

// GenInitOptions will produce some basic options for one account that owns
// the token ledger, to use for dev mode.
//
// The first argument can be the hex address of the owner. If not given, a
// new key is generated and printed out. The second argument can be the
// initial token supply.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner piggybank.Address
	if len(args) > 0 {
		addr, err := piggybank.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		owner = addr
	} else {
		// if no address provided, auto-generate one and print out the
		// keys
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(keys)
	}

	var supply uint64
	if len(args) > 1 {
		if _, err := fmt.Sscan(args[1], &supply); err != nil {
			return nil, fmt.Errorf("invalid supply %q: %s", args[1], err)
		}
	}

	state := genesisState{
		Cash:  []cash.GenesisAccount{{Address: owner}},
		Token: &token.Genesis{Owner: owner, Supply: supply},
		Goals: goal.Genesis{Goals: []goal.Goal{}},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "piggy.db")
	}

	application, err := Application("piggybank", Stack(), TxDecoder, dbPath, options.Sink, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key, along with a json
// representation of the keys.
func GenerateCoinKey() (piggybank.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
