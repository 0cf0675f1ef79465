package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain root error": {
			err:      ErrUnauthorized,
			wantCode: ErrUnauthorized.code,
			wantLog:  "unauthorized",
		},
		"wrapped root error": {
			err:      Wrap(Wrap(ErrNotFound, "goal"), "contribute"),
			wantCode: ErrNotFound.code,
			wantLog:  "contribute: goal: not found",
		},
		"nil is success": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("database password is secret"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib error in debug mode is not redacted": {
			err:      fmt.Errorf("stdlib"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "stdlib",
		},
		"multi error code is the code of the first error": {
			err:      Append(ErrInvalidAmount, ErrOverflow),
			wantCode: ErrInvalidAmount.code,
			wantLog:  "2 errors occurred:\n\t* invalid amount\n\t* an operation cannot be completed due to value overflow",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic.New("secret"), false); ErrPanic.Is(err) {
		t.Error("panic must be redacted")
	}
	if err := Redact(ErrNotFound.New("goal"), false); !ErrNotFound.Is(err) {
		t.Error("coded error must not be redacted")
	}
	if err := Redact(ErrPanic.New("secret"), true); !ErrPanic.Is(err) {
		t.Error("debug mode must not redact")
	}
}
