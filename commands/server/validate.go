package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/store"
)

// ValidateGenesis loads the app_state of every given genesis file into an
// in memory store and returns the first failure.
func ValidateGenesis(ini piggybank.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: cmd validate <path to genesis.json>...")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini piggybank.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot read genesis file")
	}

	var genesis struct {
		State piggybank.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot JSON deserialize genesis")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
