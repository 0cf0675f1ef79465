package weavetest

import "github.com/iov-one/piggybank"

// Decorator is a mock implementation of the piggybank.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. If error attributes are not set then wrapped handler method is
// called and its result returned. Every call is counted.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling the
	// wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ piggybank.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx, next piggybank.Checker) (*piggybank.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx, next piggybank.Deliverer) (*piggybank.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls given decorator with given handler as
// the next step.
func Decorate(h piggybank.Handler, d piggybank.Decorator) piggybank.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn piggybank.Handler
	dc piggybank.Decorator
}

var _ piggybank.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
