package goal

import "github.com/iov-one/piggybank/errors"

var (
	ErrInvalidDeadline    = errors.Register(1001, "invalid deadline")
	ErrGoalDeadlinePassed = errors.Register(1002, "goal deadline has passed")
)
