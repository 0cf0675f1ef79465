package timelock

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
	"github.com/iov-one/piggybank/store"
	"github.com/iov-one/piggybank/weavetest"
	"github.com/iov-one/piggybank/weavetest/assert"
	"github.com/iov-one/piggybank/x/cash"
)

func TestInitialize(t *testing.T) {
	now := piggybank.AsUnixTime(time.Now())
	owner := weavetest.NewCondition()

	cases := map[string]struct {
		signer  piggybank.Condition
		msg     *InitializeMsg
		wantErr *errors.Error
	}{
		"unlock in the future": {
			signer: owner,
			msg:    &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, UnlockTime: now + 10},
		},
		"unlock now": {
			signer:  owner,
			msg:     &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, UnlockTime: now},
			wantErr: ErrInvalidUnlockTime,
		},
		"unlock in the past": {
			signer:  owner,
			msg:     &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, UnlockTime: now - 100},
			wantErr: ErrInvalidUnlockTime,
		},
		"missing signer": {
			msg:     &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, UnlockTime: now + 10},
			wantErr: errors.ErrUnauthorized,
		},
		"missing metadata": {
			signer:  owner,
			msg:     &InitializeMsg{UnlockTime: now + 10},
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.CtxAuth{Key: "auth"}
			h := InitializeHandler{auth: auth, bucket: NewBucket()}
			db := store.MemStore()
			ctx := piggybank.WithBlockTime(context.Background(), now.Time())
			if tc.signer != nil {
				ctx = auth.SetConditions(ctx, tc.signer)
			}
			tx := &weavetest.Tx{Msg: tc.msg}

			_, err := h.Check(ctx, db.CacheWrap(), tx)
			assert.IsErr(t, tc.wantErr, err)
			res, err := h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			assert.Equal(t, weavetest.SequenceID(1), res.Data)
			assert.EventKinds(t, res.Events)

			var lock LockAccount
			assert.Nil(t, NewBucket().One(db, res.Data, &lock))
			assert.Equal(t, owner.Address(), lock.Owner)
			assert.Equal(t, tc.msg.UnlockTime, lock.UnlockTime)
			assert.Equal(t, uint64(0), lock.Balance)
		})
	}
}

func TestDeposit(t *testing.T) {
	now := piggybank.AsUnixTime(time.Now())
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	lockID := weavetest.SequenceID(1)

	cases := map[string]struct {
		balance     uint64
		unlock      piggybank.UnixTime
		signer      piggybank.Condition
		msg         *DepositMsg
		wantErr     *errors.Error
		wantBalance uint64
	}{
		"owner deposits": {
			balance:     100,
			unlock:      now + 10,
			signer:      owner,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID, Amount: 500},
			wantBalance: 600,
		},
		"anybody can deposit": {
			unlock:      now + 10,
			signer:      stranger,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID, Amount: 500},
			wantBalance: 500,
		},
		"deposit after unlock": {
			balance:     1,
			unlock:      now - 10,
			signer:      stranger,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID, Amount: 2},
			wantBalance: 3,
		},
		"zero deposit": {
			balance:     7,
			unlock:      now + 10,
			signer:      stranger,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID},
			wantBalance: 7,
		},
		"balance overflow": {
			balance:     math.MaxUint64,
			unlock:      now + 10,
			signer:      owner,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID, Amount: 1},
			wantErr:     errors.ErrOverflow,
			wantBalance: math.MaxUint64,
		},
		"unknown vault": {
			balance:     7,
			unlock:      now + 10,
			signer:      owner,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: weavetest.SequenceID(2), Amount: 1},
			wantErr:     errors.ErrNotFound,
			wantBalance: 7,
		},
		"invalid vault id": {
			balance:     7,
			unlock:      now + 10,
			signer:      owner,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: []byte("x"), Amount: 1},
			wantErr:     errors.ErrInput,
			wantBalance: 7,
		},
		"missing signer": {
			balance:     7,
			unlock:      now + 10,
			msg:         &DepositMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID, Amount: 1},
			wantErr:     errors.ErrUnauthorized,
			wantBalance: 7,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.CtxAuth{Key: "auth"}
			bucket := NewBucket()
			h := DepositHandler{auth: auth, bucket: bucket}
			db := store.MemStore()
			lock := &LockAccount{
				Metadata:   &piggybank.Metadata{Schema: 1},
				Owner:      owner.Address(),
				UnlockTime: tc.unlock,
				Balance:    tc.balance,
			}
			assert.Nil(t, bucket.Put(db, lockID, lock))

			ctx := piggybank.WithBlockTime(context.Background(), now.Time())
			if tc.signer != nil {
				ctx = auth.SetConditions(ctx, tc.signer)
			}
			res, err := h.Deliver(ctx, db, &weavetest.Tx{Msg: tc.msg})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, 0, len(res.Events))
			}

			var got LockAccount
			assert.Nil(t, bucket.One(db, lockID, &got))
			assert.Equal(t, tc.wantBalance, got.Balance)
		})
	}
}

func TestWithdraw(t *testing.T) {
	now := piggybank.AsUnixTime(time.Now())
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	lockID := weavetest.SequenceID(1)

	cases := map[string]struct {
		unlock     piggybank.UnixTime
		signer     piggybank.Condition
		wantErr    *errors.Error
		wantWallet uint64
	}{
		"owner withdraws at unlock time": {
			unlock:     now,
			signer:     owner,
			wantWallet: 1000,
		},
		"owner withdraws after unlock time": {
			unlock:     now - 100,
			signer:     owner,
			wantWallet: 1000,
		},
		"too early": {
			unlock:  now + 1,
			signer:  owner,
			wantErr: ErrCannotWithdrawYet,
		},
		"not the owner": {
			unlock:  now - 1,
			signer:  stranger,
			wantErr: ErrNotOwner,
		},
		"too early is reported before ownership": {
			unlock:  now + 1,
			signer:  stranger,
			wantErr: ErrCannotWithdrawYet,
		},
		"missing signer": {
			unlock:  now - 1,
			wantErr: ErrNotOwner,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.CtxAuth{Key: "auth"}
			bucket := NewBucket()
			bank := cash.NewController()
			h := WithdrawHandler{auth: auth, bucket: bucket, bank: bank}
			db := store.MemStore()
			lock := &LockAccount{
				Metadata:   &piggybank.Metadata{Schema: 1},
				Owner:      owner.Address(),
				UnlockTime: tc.unlock,
				Balance:    1000,
			}
			assert.Nil(t, bucket.Put(db, lockID, lock))

			ctx := piggybank.WithBlockTime(context.Background(), now.Time())
			if tc.signer != nil {
				ctx = auth.SetConditions(ctx, tc.signer)
			}
			tx := &weavetest.Tx{Msg: &WithdrawMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID}}

			if _, err := h.Check(ctx, db.CacheWrap(), tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			balance, err := bank.Balance(db, owner.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantWallet, balance)

			if tc.wantErr != nil {
				assert.Nil(t, bucket.Has(db, lockID))
				return
			}
			assert.Equal(t, []piggybank.Event{
				&WithdrawalEvent{LockID: lockID, Owner: owner.Address(), Amount: 1000, When: now},
			}, res.Events)
			if err := bucket.Has(db, lockID); !errors.ErrNotFound.Is(err) {
				t.Fatalf("vault must be deleted: %+v", err)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	db := store.MemStore()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	bucket := NewBucket()
	for i, owner := range []piggybank.Address{alice, bob, alice} {
		lock := &LockAccount{Metadata: &piggybank.Metadata{Schema: 1}, Owner: owner, UnlockTime: 10}
		assert.Nil(t, bucket.Put(db, orm.EncodeSequence(int64(i+1)), lock))
	}

	qr := piggybank.NewQueryRouter()
	RegisterQuery(qr)

	res, err := qr.Handler("/locks").Query(db, piggybank.KeyQueryMod, weavetest.SequenceID(2))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	res, err = qr.Handler("/locks/owner").Query(db, piggybank.KeyQueryMod, alice)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
}
