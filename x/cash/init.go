package cash

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Address is
// given in any format accepted by piggybank.ParseAddress.
type GenesisAccount struct {
	Address piggybank.Address `json:"address"`
	Balance uint64            `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ piggybank.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database
func (Initializer) FromGenesis(opts piggybank.Options, kv piggybank.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.Credit(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
