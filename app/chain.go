package app

import (
	"reflect"

	"github.com/iov-one/piggybank"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []piggybank.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final Handler
(often a Router), returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  sigs.NewDecorator(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	  router,
	)
*/
func ChainDecorators(chain ...piggybank.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...piggybank.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := append(append([]piggybank.Decorator(nil), d.chain...), chain...)
	return Decorators{newChain}
}

// cutoffNil will in-place remove all nil values from given slice.
func cutoffNil(ds []piggybank.Decorator) []piggybank.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through the chain of decorators before calling the final Handler.
func (d Decorators) WithHandler(h piggybank.Handler) piggybank.Handler {
	// the top of the chain is executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific Handler.
type step struct {
	d    piggybank.Decorator
	next piggybank.Handler
}

var _ piggybank.Handler = step{}

func (s step) Check(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
