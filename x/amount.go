package x

import (
	"math"

	"github.com/iov-one/piggybank/errors"
)

// AddAmount returns the sum of two token amounts. An amount that does not
// fit into 64 bits is rejected with ErrOverflow instead of wrapping around.
func AddAmount(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// ValidateAmount returns ErrInvalidAmount for a zero amount.
func ValidateAmount(amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "must be greater than zero")
	}
	return nil
}
