package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/store"
	"github.com/iov-one/piggybank/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

type panicHandler struct{}

var _ piggybank.Handler = panicHandler{}

func (panicHandler) Check(piggybank.Context, piggybank.KVStore, piggybank.Tx) (*piggybank.CheckResult, error) {
	panic("check boom")
}

func (panicHandler) Deliver(piggybank.Context, piggybank.KVStore, piggybank.Tx) (*piggybank.DeliverResult, error) {
	panic("deliver boom")
}

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	var logs bytes.Buffer
	ctx := piggybank.WithLogger(context.Background(), log.NewTMLogger(&logs))
	db := store.MemStore()
	tx := &weavetest.Tx{}

	assert.Panics(t, func() { _, _ = h.Check(ctx, db, tx) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, db, tx) })

	_, err := r.Check(ctx, db, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "check boom")

	_, err = r.Deliver(ctx, db, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "deliver boom")
	assert.Contains(t, logs.String(), "recovered from panic")

	// Without a panic the result is passed through.
	ok := &weavetest.Handler{DeliverResult: piggybank.DeliverResult{Log: "fine"}}
	res, err := r.Deliver(ctx, db, tx, ok)
	assert.NoError(t, err)
	assert.Equal(t, "fine", res.Log)

	// Plain errors are not reported as panics.
	logs.Reset()
	_, err = r.Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrNotFound})
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Empty(t, logs.String())
}
