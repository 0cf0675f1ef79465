package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/piggybank/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagForce   = "f"
)

// GenOptions can parse command-line and flag to generate default
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the path of the tendermint genesis file within home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd adds the app_state produced by gen to the genesis file created
// by `tendermint init`. An existing app_state is only replaced if the -f
// flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var force bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&force, flagForce, false, "overwrite existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := GenesisFile(home)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", genFile)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written to genesis file", "path", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't want
// to parse, so we just grab it into a raw object format, so we can add one
// line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -f to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
