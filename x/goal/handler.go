package goal

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
	"github.com/iov-one/piggybank/x"
)

const (
	createGoalCost int64 = 200
	contributeCost int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package. New goal ids are taken from ids.
func RegisterRoutes(r piggybank.Registry, auth x.Authenticator, ids IDSource) {
	bucket := NewBucket()
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket, ids: ids})
	r.Handle(&ContributeMsg{}, ContributeHandler{auth: auth, bucket: bucket})
}

// RegisterQuery will register goals as "/goals", the user index as
// "/goals/user" and the progress view as "/goals/progress".
func RegisterQuery(qr piggybank.QueryRouter) {
	b := NewBucket()
	b.Register("goals", qr)
	qr.Register("/goals/progress", progressQuery{bucket: b})
}

// CreateHandler stores a new goal owned by the main signer.
type CreateHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ids    IDSource
}

var _ piggybank.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: createGoalCost}, nil
}

// Deliver stores the goal with a zero balance. The new goal id is returned
// as the result data.
func (h CreateHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, user, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.ids.NextID(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire goal id")
	}
	key := Key(id)
	switch err := h.bucket.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "goal %d already exists", id)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	goal := &Goal{
		Metadata:     &piggybank.Metadata{Schema: 1},
		ID:           id,
		User:         user,
		TargetAmount: msg.TargetAmount,
		Deadline:     msg.Deadline,
		Balance:      0,
	}
	if err := h.bucket.Put(db, key, goal); err != nil {
		return nil, errors.Wrap(err, "cannot store goal")
	}

	return &piggybank.DeliverResult{
		Data: key,
		Events: []piggybank.Event{
			&GoalCreated{
				GoalID:       id,
				User:         user,
				TargetAmount: goal.TargetAmount,
				Deadline:     goal.Deadline,
			},
		},
	}, nil
}

func (h CreateHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*CreateMsg, piggybank.Address, error) {
	var msg CreateMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if piggybank.IsExpired(ctx, msg.Deadline) {
		return nil, nil, errors.Wrap(ErrInvalidDeadline, "deadline must be in the future")
	}
	user, err := x.Signer(ctx, h.auth, "goal owner")
	if err != nil {
		return nil, nil, err
	}
	return &msg, user, nil
}

// ContributeHandler adds to the balance of a goal. Anybody can contribute.
type ContributeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ piggybank.Handler = ContributeHandler{}

func (h ContributeHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &piggybank.CheckResult{GasAllocated: contributeCost}, nil
}

func (h ContributeHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	msg, goal, contributor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if goal.Balance, err = x.AddAmount(goal.Balance, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "goal balance")
	}
	if err := h.bucket.Put(db, Key(goal.ID), goal); err != nil {
		return nil, errors.Wrap(err, "cannot store goal")
	}

	events := []piggybank.Event{
		&Contribution{GoalID: goal.ID, User: contributor, Amount: msg.Amount},
	}
	if goal.Achieved() {
		events = append(events, &GoalAchieved{GoalID: goal.ID, User: contributor})
	}
	return &piggybank.DeliverResult{Events: events}, nil
}

func (h ContributeHandler) validate(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*ContributeMsg, *Goal, piggybank.Address, error) {
	var msg ContributeMsg
	if err := piggybank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	var goal Goal
	if err := h.bucket.One(db, Key(msg.GoalID), &goal); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "goal %d", msg.GoalID)
	}
	if piggybank.InThePast(ctx, goal.Deadline) {
		return nil, nil, nil, errors.Wrap(ErrGoalDeadlinePassed, "no more contributions accepted")
	}
	user, err := x.Signer(ctx, h.auth, "contributor")
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, &goal, user, nil
}
