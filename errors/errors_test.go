package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"successful comparison to a pkg/errors wrapped error": {
			a:      ErrOverflow,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"multi error contains the kind": {
			a:      ErrInvalidAmount,
			b:      Append(ErrMsg, Wrap(ErrInvalidAmount, "zero")),
			wantIs: true,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got: %v", got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Wrapf(nil, "nothing %d", 1); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(ErrInvalidAmount, "amount %d", 0)
	if got, want := err.Error(), "amount 0: invalid amount"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if !strings.Contains(fmt.Sprintf("%+v", err), "errors_test.go") {
		t.Fatal("stack trace does not point to the place of creation")
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "second not found")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := run(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}
