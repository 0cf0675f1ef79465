package app

import (
	"context"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
//
// Events returned by delivered transactions are buffered and handed to the
// event sink only once the block is committed. Transactions that fail do
// not emit anything.
type BaseApp struct {
	*StoreApp
	decoder piggybank.TxDecoder
	handler piggybank.Handler
	sink    piggybank.EventSink
	debug   bool

	pending []piggybank.EmittedEvent
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp constructs a basic abci application. sink can be nil.
func NewBaseApp(
	store *StoreApp,
	decoder piggybank.TxDecoder,
	handler piggybank.Handler,
	sink piggybank.EventSink,
	debug bool,
) *BaseApp {
	return &BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		sink:     sink,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b *BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return piggybank.DeliverTxError(err, b.debug)
	}

	ctx := piggybank.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", piggybank.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err == nil {
		b.collect(res.Events)
	}
	return piggybank.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b *BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return piggybank.CheckTxError(err, b.debug)
	}

	ctx := piggybank.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", piggybank.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return piggybank.CheckOrError(res, err, b.debug)
}

// Commit - ABCI - persists the state and publishes all events collected in
// the committed block.
func (b *BaseApp) Commit() abci.ResponseCommit {
	res := b.StoreApp.Commit()

	events := b.pending
	b.pending = nil
	if b.sink == nil || len(events) == 0 {
		return res
	}
	if err := b.sink.Publish(context.Background(), events); err != nil {
		b.Logger().Error("cannot publish events",
			"count", len(events),
			"err", err)
	}
	return res
}

// Pending returns events of the current block that are waiting for the
// commit.
func (b *BaseApp) Pending() []piggybank.EmittedEvent {
	return b.pending
}

func (b *BaseApp) collect(events []piggybank.Event) {
	if len(events) == 0 {
		return
	}
	ctx := b.BlockContext()
	height, _ := piggybank.GetHeight(ctx)
	// Zero time when the block did not declare one.
	when, _ := piggybank.BlockTime(ctx)
	for _, e := range events {
		b.pending = append(b.pending, piggybank.EmittedEvent{
			Height: height,
			Time:   when,
			Event:  e,
		})
	}
}

// loadTx calls the decoder, and capture any panics
func (b *BaseApp) loadTx(txBytes []byte) (tx piggybank.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
