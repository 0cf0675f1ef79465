package timelock

import "github.com/iov-one/piggybank/errors"

var (
	ErrInvalidUnlockTime = errors.Register(1101, "unlock time should be in the future")
	ErrCannotWithdrawYet = errors.Register(1102, "cannot withdraw yet")
	ErrNotOwner          = errors.Register(1103, "not the owner")
)
