package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned when the caller identity does not match
	// the owner of the record it tries to mutate.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a record cannot be loaded.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned when a message is malformed and cannot be
	// processed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a model fails validation and cannot be
	// persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a record with the same key already
	// exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when a code path that must never be reached is
	// executed, for example because the application was wired incorrectly.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable is returned when an immutable value gets modified.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object is in an invalid state.
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance cannot cover an
	// operation.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrInvalidAmount is returned when a supplied amount or target is
	// zero.
	ErrInvalidAmount = Register(13, "invalid amount")

	// ErrInput stands for general input problems.
	ErrInput = Register(14, "invalid input")

	// ErrExpired is returned when an entity is used after its time.
	ErrExpired = Register(15, "expired")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrMetadata is returned when the metadata of a model or message is
	// missing or declares an unsupported schema version.
	ErrMetadata = Register(17, "invalid metadata")

	// ErrDatabase is returned when the underlying storage fails.
	ErrDatabase = Register(18, "database error")

	// ErrIteratorDone is returned by an iterator when there are no more
	// elements to read.
	ErrIteratorDone = Register(19, "iterator done")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Common root errors are declared in this package. Extensions declare their
// own codes by calling this function from a package level var block. A code
// can be registered only once. Attempt to reuse a code results in panic.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes keeps track of registered codes.
var usedCodes = map[uint32]*Error{
	1: nil, // Reserved for errors that do not carry a code.
}

// Error represents a root error.
//
// Every error returned at runtime should wrap one of the registered root
// errors. The root error decides the ABCI code that is returned to the client
// and is what error tests compare against.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code registered for this root error.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New returns a new error with this error as the root cause. Below two lines
// are equal
//
//	e.New("my description")
//	Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is checks if given error instance is of this kind. The error is unwrapped
// using the Cause method for as long as possible.
func (e *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with a nil
	// implementation of an error.
	if e == nil {
		return errIsNil(err)
	}

	for {
		if err == e {
			return true
		}

		// Multi error is the kind of e if any of the errors it holds
		// is.
		if u, ok := err.(unpacker); ok {
			for _, er := range u.Unpack() {
				if e.Is(er) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide ABCICode method (ie. stdlib errors),
// it will be labeled as internal error.
//
// If err is nil, this returns nil, so it is safe to wrap the result of a call
// in a return statement.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// Attach a stack trace only once, at the innermost wrap.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional formatted information.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

// Cause implements the causer interface.
func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stops its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call this
// function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType is a helper to augment an error with a corresponding type message.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// causer is implemented by an error that supports wrapping.
type causer interface {
	Cause() error
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a narrow spectrum of
// cases (mostly in tests) where a typed nil pointer is passed as an error.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
