package timelock

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
	"github.com/iov-one/piggybank/x"
	"github.com/iov-one/piggybank/x/cash"
)

const (
	initializeCost int64 = 200
	depositCost    int64 = 50
	withdrawCost   int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Withdrawn balances are credited using given cash controller.
func RegisterRoutes(r piggybank.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, bucket: bucket})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, bucket: bucket})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, bucket: bucket, bank: bank})
}

// RegisterQuery will register vaults as "/locks" and the owner index as
// "/locks/owner".
func RegisterQuery(qr piggybank.QueryRouter) {
	NewBucket().Register("locks", qr)
}

// InitializeHandler creates an empty vault owned by the main signer.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ piggybank.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver stores a new vault. The vault id is returned as the result data.
func (h InitializeHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := lockSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	lock := &LockAccount{
		Metadata:   &piggybank.Metadata{Schema: 1},
		Owner:      owner,
		UnlockTime: msg.UnlockTime,
	}
	if err := h.bucket.Put(db, key, lock); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &piggybank.DeliverResult{Data: key}, nil
}

func (h InitializeHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*InitializeMsg, piggybank.Address, error) {
	var msg InitializeMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if piggybank.IsExpired(ctx, msg.UnlockTime) {
		return nil, nil, errors.Wrapf(ErrInvalidUnlockTime, "unlock time %s", msg.UnlockTime)
	}
	owner, err := x.Signer(ctx, h.auth, "owner")
	if err != nil {
		return nil, nil, err
	}
	return &msg, owner, nil
}

// DepositHandler adds to the balance of a vault. Any signer can deposit.
type DepositHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ piggybank.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, lock, depositor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if lock.Balance, err = x.AddAmount(lock.Balance, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "vault balance")
	}
	if err := h.bucket.Put(db, msg.LockID, lock); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	piggybank.GetLogger(ctx).Debug("vault deposit",
		"lock", orm.DecodeSequence(msg.LockID),
		"depositor", depositor,
		"amount", msg.Amount)
	return &piggybank.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*DepositMsg, *LockAccount, piggybank.Address, error) {
	var msg DepositMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	var lock LockAccount
	if err := h.bucket.One(db, msg.LockID, &lock); err != nil {
		return nil, nil, nil, errors.Wrap(err, "vault")
	}
	depositor, err := x.Signer(ctx, h.auth, "depositor")
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, &lock, depositor, nil
}

// WithdrawHandler drains an unlocked vault into the owner's wallet.
type WithdrawHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ piggybank.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver credits the whole vault balance to the owner and deletes the
// vault.
func (h WithdrawHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, lock, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := piggybank.BlockNow(ctx)
	if err != nil {
		return nil, err
	}

	drained := lock.Balance
	if err := h.bank.Credit(db, lock.Owner, drained); err != nil {
		return nil, errors.Wrap(err, "cannot credit owner")
	}
	if err := h.bucket.Delete(db, msg.LockID); err != nil {
		return nil, errors.Wrap(err, "cannot delete vault")
	}

	return &piggybank.DeliverResult{
		Events: []piggybank.Event{
			&WithdrawalEvent{
				LockID: msg.LockID,
				Owner:  lock.Owner,
				Amount: drained,
				When:   now,
			},
		},
	}, nil
}

func (h WithdrawHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*WithdrawMsg, *LockAccount, error) {
	var msg WithdrawMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var lock LockAccount
	if err := h.bucket.One(db, msg.LockID, &lock); err != nil {
		return nil, nil, errors.Wrap(err, "vault")
	}
	if piggybank.InTheFuture(ctx, lock.UnlockTime) {
		now, _ := piggybank.BlockNow(ctx)
		return nil, nil, errors.Wrapf(ErrCannotWithdrawYet, "locked for another %s", lock.UnlockTime.Remaining(now))
	}
	if err := x.RequireOwner(ctx, h.auth, lock.Owner, ErrNotOwner); err != nil {
		return nil, nil, errors.Wrap(err, "only the owner can withdraw")
	}
	return &msg, &lock, nil
}
