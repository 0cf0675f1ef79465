package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/crypto"
	"github.com/iov-one/piggybank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := piggybank.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []piggybank.Condition{priv.PublicKey().Condition()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec piggybank.Decorator, my piggybank.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec piggybank.Decorator, my piggybank.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(piggybank.Decorator, piggybank.Tx) error{check, deliver} {
		tx.Signatures = nil
		assert.Error(t, fn(d, tx), "%d", i)

		tx.Signatures = []*StdSignature{sig}
		assert.NoError(t, fn(d, tx), "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// replay
		assert.Error(t, fn(d, tx), "%d", i)

		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		assert.NoError(t, fn(ad, tx), "%d", i)
		assert.Equal(t, []piggybank.Condition{}, signers.Signers)

		tx.Signatures = []*StdSignature{sig1}
		assert.NoError(t, fn(ad, tx), "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}
