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

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := piggybank.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "timelock/withdraw"}}
	logging := NewLogging()

	_, err := logging.Deliver(ctx, db, tx, &weavetest.Handler{DeliverResult: piggybank.DeliverResult{Log: "drained"}})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "drained")
	assert.Contains(t, buf.String(), "timelock/withdraw")

	buf.Reset()
	_, err = logging.Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrUnauthorized})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, buf.String(), "unauthorized")
}
