package token

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

const optKey = "token"

// Genesis is the "token" section of the genesis file. When present, the
// ledger is created at chain start and InitializeMsg can no longer be used.
type Genesis struct {
	Owner  piggybank.Address `json:"owner"`
	Supply uint64            `json:"supply"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ piggybank.Initializer = Initializer{}

// FromGenesis will parse the token account from genesis and save it to the
// database.
func (Initializer) FromGenesis(opts piggybank.Options, db piggybank.KVStore) error {
	var gen *Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if gen == nil {
		return nil
	}
	acc := &TokenAccount{
		Metadata: &piggybank.Metadata{Schema: 1},
		Owner:    gen.Owner,
		Supply:   gen.Supply,
	}
	if err := NewBucket().Put(db, accountKey, acc); err != nil {
		return errors.Wrap(err, "token account")
	}
	return nil
}
