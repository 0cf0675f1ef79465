package token

import (
	"context"
	"math"
	"testing"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/app"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/store"
	"github.com/iov-one/piggybank/weavetest"
	"github.com/iov-one/piggybank/weavetest/assert"
)

func TestInitialize(t *testing.T) {
	owner := weavetest.NewCondition()
	other := weavetest.NewCondition()

	cases := map[string]struct {
		signer     piggybank.Condition
		before     []*InitializeMsg
		msg        *InitializeMsg
		wantErr    *errors.Error
		wantSupply uint64
	}{
		"owner creates the ledger": {
			signer:     owner,
			msg:        &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), InitialSupply: 1000},
			wantSupply: 1000,
		},
		"zero supply is allowed": {
			signer:     owner,
			msg:        &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address()},
			wantSupply: 0,
		},
		"cannot initialize for somebody else": {
			signer:  other,
			msg:     &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), InitialSupply: 1},
			wantErr: errors.ErrUnauthorized,
		},
		"cannot initialize twice": {
			signer: owner,
			before: []*InitializeMsg{
				{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), InitialSupply: 5},
			},
			msg:        &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), InitialSupply: 1000},
			wantErr:    errors.ErrDuplicate,
			wantSupply: 5,
		},
		"missing metadata": {
			signer:  owner,
			msg:     &InitializeMsg{Owner: owner.Address()},
			wantErr: errors.ErrMetadata,
		},
		"missing owner": {
			signer:  owner,
			msg:     &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.CtxAuth{Key: "auth"}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth)
			db := store.MemStore()
			ctx := auth.SetConditions(context.Background(), tc.signer)

			for i, msg := range tc.before {
				if _, err := rt.Deliver(ctx, db, &weavetest.Tx{Msg: msg}); err != nil {
					t.Fatalf("cannot deliver message %d: %s", i, err)
				}
			}

			tx := &weavetest.Tx{Msg: tc.msg}
			if _, err := rt.Check(ctx, db.CacheWrap(), tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := rt.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			acc, err := Load(db)
			if tc.wantErr != nil && len(tc.before) == 0 {
				if !errors.ErrNotFound.Is(err) {
					t.Fatalf("failed initialization must not create the ledger: %+v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSupply, acc.Supply)
			assert.Equal(t, owner.Address(), acc.Owner)
		})
	}
}

func TestMint(t *testing.T) {
	owner := weavetest.NewCondition()
	other := weavetest.NewCondition()
	recipient := weavetest.NewCondition().Address()

	cases := map[string]struct {
		initial    *TokenAccount
		signer     piggybank.Condition
		msg        *MintMsg
		wantErr    *errors.Error
		wantSupply uint64
		wantEvents []piggybank.Event
	}{
		"owner mints": {
			initial:    &TokenAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), Supply: 1000},
			signer:     owner,
			msg:        &MintMsg{Metadata: &piggybank.Metadata{Schema: 1}, To: recipient, Amount: 500},
			wantSupply: 1500,
			wantEvents: []piggybank.Event{&MintEvent{To: recipient, Amount: 500}},
		},
		"owner mints zero": {
			initial:    &TokenAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), Supply: 7},
			signer:     owner,
			msg:        &MintMsg{Metadata: &piggybank.Metadata{Schema: 1}, To: recipient},
			wantSupply: 7,
			wantEvents: []piggybank.Event{&MintEvent{To: recipient}},
		},
		"non owner cannot mint": {
			initial:    &TokenAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), Supply: 1000},
			signer:     other,
			msg:        &MintMsg{Metadata: &piggybank.Metadata{Schema: 1}, To: other.Address(), Amount: 500},
			wantErr:    errors.ErrUnauthorized,
			wantSupply: 1000,
		},
		"supply overflow": {
			initial:    &TokenAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), Supply: math.MaxUint64 - 1},
			signer:     owner,
			msg:        &MintMsg{Metadata: &piggybank.Metadata{Schema: 1}, To: recipient, Amount: 2},
			wantErr:    errors.ErrOverflow,
			wantSupply: math.MaxUint64 - 1,
		},
		"recipient is required": {
			initial:    &TokenAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner.Address(), Supply: 1},
			signer:     owner,
			msg:        &MintMsg{Metadata: &piggybank.Metadata{Schema: 1}, Amount: 2},
			wantErr:    errors.ErrEmpty,
			wantSupply: 1,
		},
		"ledger not initialized": {
			signer:  owner,
			msg:     &MintMsg{Metadata: &piggybank.Metadata{Schema: 1}, To: recipient, Amount: 2},
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.CtxAuth{Key: "auth"}
			h := MintHandler{auth: auth, bucket: NewBucket()}
			db := store.MemStore()
			if tc.initial != nil {
				assert.Nil(t, NewBucket().Put(db, accountKey, tc.initial))
			}
			ctx := auth.SetConditions(context.Background(), tc.signer)
			tx := &weavetest.Tx{Msg: tc.msg}

			if _, err := h.Check(ctx, db.CacheWrap(), tx); tc.wantErr != errors.ErrOverflow && !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantEvents, res.Events)
			}

			if tc.initial == nil {
				return
			}
			acc, err := Load(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSupply, acc.Supply)
		})
	}
}

func TestGenesis(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	raw, err := owner.MarshalJSON()
	assert.Nil(t, err)

	db := store.MemStore()
	opts := piggybank.Options{
		"token": []byte(`{"owner": ` + string(raw) + `, "supply": 42}`),
	}
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	acc, err := Load(db)
	assert.Nil(t, err)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, uint64(42), acc.Supply)

	empty := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(piggybank.Options{}, empty))
	if _, err := Load(empty); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestQuery(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	db := store.MemStore()
	assert.Nil(t, NewBucket().Put(db, accountKey, &TokenAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner, Supply: 3}))

	qr := piggybank.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/tokens")
	if h == nil {
		t.Fatal("tokens query not registered")
	}
	res, err := h.Query(db, piggybank.KeyQueryMod, []byte("token"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	var acc TokenAccount
	assert.Nil(t, acc.Unmarshal(res[0].Value))
	assert.Equal(t, uint64(3), acc.Supply)
}
