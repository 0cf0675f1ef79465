package timelock

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/store"
	"github.com/iov-one/piggybank/weavetest"
	"github.com/iov-one/piggybank/x/cash"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVaultLifecycle(t *testing.T) {
	Convey("Given a vault unlocking in ten seconds", t, func() {
		start := piggybank.AsUnixTime(time.Now())
		owner := weavetest.NewCondition()
		friend := weavetest.NewCondition()
		auth := &weavetest.CtxAuth{Key: "auth"}
		bank := cash.NewController()
		bucket := NewBucket()
		db := store.MemStore()

		at := func(offset int64, signer piggybank.Condition) piggybank.Context {
			ctx := piggybank.WithBlockTime(context.Background(), start.Add(time.Duration(offset)*time.Second).Time())
			return auth.SetConditions(ctx, signer)
		}

		res, err := InitializeHandler{auth: auth, bucket: bucket}.Deliver(at(0, owner), db,
			&weavetest.Tx{Msg: &InitializeMsg{Metadata: &piggybank.Metadata{Schema: 1}, UnlockTime: start + 10}})
		So(err, ShouldBeNil)
		lockID := res.Data

		deposit := DepositHandler{auth: auth, bucket: bucket}
		for _, signer := range []piggybank.Condition{owner, friend} {
			_, err := deposit.Deliver(at(1, signer), db, &weavetest.Tx{Msg: &DepositMsg{
				Metadata: &piggybank.Metadata{Schema: 1},
				LockID:   lockID,
				Amount:   500,
			}})
			So(err, ShouldBeNil)
		}

		var lock LockAccount
		So(bucket.One(db, lockID, &lock), ShouldBeNil)
		So(lock.Balance, ShouldEqual, uint64(1000))

		withdraw := WithdrawHandler{auth: auth, bucket: bucket, bank: bank}
		withdrawTx := &weavetest.Tx{Msg: &WithdrawMsg{Metadata: &piggybank.Metadata{Schema: 1}, LockID: lockID}}

		Convey("Withdrawing after five seconds fails", func() {
			_, err := withdraw.Deliver(at(5, owner), db, withdrawTx)
			So(ErrCannotWithdrawYet.Is(err), ShouldBeTrue)
			So(bucket.Has(db, lockID), ShouldBeNil)
		})

		Convey("Somebody else cannot withdraw after ten seconds", func() {
			_, err := withdraw.Deliver(at(10, friend), db, withdrawTx)
			So(ErrNotOwner.Is(err), ShouldBeTrue)
		})

		Convey("The owner withdraws after ten seconds", func() {
			res, err := withdraw.Deliver(at(10, owner), db, withdrawTx)
			So(err, ShouldBeNil)
			So(res.Events, ShouldResemble, []piggybank.Event{
				&WithdrawalEvent{LockID: lockID, Owner: owner.Address(), Amount: 1000, When: start + 10},
			})

			balance, err := bank.Balance(db, owner.Address())
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, uint64(1000))

			Convey("And the vault is gone", func() {
				So(errors.ErrNotFound.Is(bucket.Has(db, lockID)), ShouldBeTrue)

				_, err := withdraw.Deliver(at(11, owner), db, withdrawTx)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})
		})
	})
}
