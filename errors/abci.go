package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode = 0

	// Errors that do not carry an ABCI code are reported under a single
	// internal code, with a generic message instead of the original one.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log that should be used in an ABCI response
// for the given error.
//
// Errors that do not provide an ABCICode method are internal. Unless running
// in debug mode their message is replaced with a generic "internal error" so
// that implementation details do not leak to clients.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	if code := abciCode(err); code != internalABCICode {
		if debug {
			// Full formatting, possibly with a stack trace.
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalABCICode, fmt.Sprintf("%+v", err)
	}
	return internalABCICode, internalABCILog
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the ABCI code of the first error in the cause chain that
// provides one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// Redact replaces all errors that do not carry an ABCI code, as well as
// recovered panics, with a generic internal error.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalABCILog)
	}
	if abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
