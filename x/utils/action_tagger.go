package utils

import (
	"strings"

	"github.com/iov-one/piggybank"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags a delivered transaction with its message path, for
	// example "goal/contribute".
	ActionKey = "action"
	// ModuleKey tags a delivered transaction with the module owning the
	// message, for example "timelock". Subscribing to it yields every
	// vault transaction.
	ModuleKey = "module"
)

// ActionTagger tags successfully delivered transactions so that clients
// can search for them by action or module.
type ActionTagger struct{}

var _ piggybank.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx, next piggybank.Checker) (*piggybank.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx, next piggybank.Deliverer) (*piggybank.DeliverResult, error) {
	// A transaction without a message cannot be routed anyway.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, actionTags(msg.Path())...)
	return res, nil
}

func actionTags(path string) []common.KVPair {
	tags := []common.KVPair{
		{Key: []byte(ActionKey), Value: []byte(path)},
	}
	if i := strings.IndexByte(path, '/'); i > 0 {
		tags = append(tags, common.KVPair{Key: []byte(ModuleKey), Value: []byte(path[:i])})
	}
	return tags
}
