package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned. If exactly one error is
// non-nil, it is returned unchanged. Otherwise all non-nil errors are
// returned as a single multi error. The ABCI code of a multi error is the
// code of the first error it holds.
func Append(errs ...error) error {
	var flat []error
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if m, ok := err.(*multiErr); ok {
			flat = append(flat, m.errs...)
		} else {
			flat = append(flat, err)
		}
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiErr{errs: flat}
	}
}

type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	msgs := make([]string, len(m.errs))
	for i, err := range m.errs {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m.errs), strings.Join(msgs, "\n\t"))
}

// Unpack implements the unpacker interface.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// ABCICode returns the code of the first error.
func (m *multiErr) ABCICode() uint32 {
	return abciCode(m.errs[0])
}

// unpacker is implemented by an error that holds more than one error.
type unpacker interface {
	Unpack() []error
}
