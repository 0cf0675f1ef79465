package token

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
	"github.com/iov-one/piggybank/x"
)

const (
	initializeCost int64 = 100
	mintCost       int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r piggybank.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, bucket: bucket})
	r.Handle(&MintMsg{}, MintHandler{auth: auth, bucket: bucket})
}

// RegisterQuery will register the token account as "/tokens"
func RegisterQuery(qr piggybank.QueryRouter) {
	NewBucket().Register("tokens", qr)
}

// InitializeHandler creates the token ledger.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ piggybank.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: initializeCost}, nil
}

func (h InitializeHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	acc := &TokenAccount{
		Metadata: &piggybank.Metadata{Schema: 1},
		Owner:    msg.Owner,
		Supply:   msg.InitialSupply,
	}
	if err := h.bucket.Put(db, accountKey, acc); err != nil {
		return nil, errors.Wrap(err, "cannot store token account")
	}
	return &piggybank.DeliverResult{Data: accountKey}, nil
}

func (h InitializeHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireOwner(ctx, h.auth, msg.Owner, errors.ErrUnauthorized); err != nil {
		return nil, errors.Wrap(err, "owner signature required")
	}
	switch err := h.bucket.Has(db, accountKey); {
	case err == nil:
		return nil, errors.Wrap(errors.ErrDuplicate, "token account already initialized")
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// MintHandler increases the token supply.
type MintHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ piggybank.Handler = MintHandler{}

func (h MintHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: mintCost}, nil
}

// Deliver adds the minted amount to the supply. An overflowing supply fails
// the message and leaves the account untouched.
func (h MintHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, acc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if acc.Supply, err = x.AddAmount(acc.Supply, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "supply")
	}
	if err := h.bucket.Put(db, accountKey, acc); err != nil {
		return nil, errors.Wrap(err, "cannot store token account")
	}
	return &piggybank.DeliverResult{
		Events: []piggybank.Event{
			&MintEvent{To: msg.To, Amount: msg.Amount},
		},
	}, nil
}

func (h MintHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*MintMsg, *TokenAccount, error) {
	var msg MintMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	acc, err := load(db, h.bucket)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireOwner(ctx, h.auth, acc.Owner, errors.ErrUnauthorized); err != nil {
		return nil, nil, errors.Wrap(err, "only the owner can mint")
	}
	return &msg, acc, nil
}
