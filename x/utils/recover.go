package utils

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// Recovery turns a panic raised further down the stack into an ErrPanic so
// that a single broken transaction cannot halt the node.
type Recovery struct{}

var _ piggybank.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx, next piggybank.Checker) (_ *piggybank.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx, next piggybank.Deliverer) (_ *piggybank.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic must be deferred before errors.Recover so that it runs after it.
func logPanic(ctx piggybank.Context, errp *error) {
	if *errp != nil && errors.ErrPanic.Is(*errp) {
		piggybank.GetLogger(ctx).Error("recovered from panic", "err", *errp)
	}
}
