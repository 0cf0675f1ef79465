package sigs

import (
	"github.com/iov-one/piggybank/errors"
)

// x/sigs reserves 120~129 error codes

// ErrInvalidSequence is returned when a signature nonce does not match the
// stored nonce of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
