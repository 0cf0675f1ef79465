package app

import (
	"github.com/iov-one/piggybank"
)

// ChainInitializers will serialize multiple initializers into one.
func ChainInitializers(inits ...piggybank.Initializer) piggybank.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []piggybank.Initializer

// FromGenesis will pass the options to all initializers, in order. It
// stops at the first error.
func (c chainInitializer) FromGenesis(opts piggybank.Options, kv piggybank.KVStore) error {
	for _, in := range c {
		if err := in.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
