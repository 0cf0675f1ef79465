package x

import (
	"math"
	"testing"

	"github.com/iov-one/piggybank/errors"
)

func TestAddAmount(t *testing.T) {
	cases := map[string]struct {
		a, b    uint64
		want    uint64
		wantErr *errors.Error
	}{
		"zero":             {a: 0, b: 0, want: 0},
		"simple":           {a: 60, b: 50, want: 110},
		"to the maximum":   {a: math.MaxUint64 - 1, b: 1, want: math.MaxUint64},
		"over the maximum": {a: math.MaxUint64, b: 1, wantErr: errors.ErrOverflow},
		"both large":       {a: math.MaxUint64 / 2, b: math.MaxUint64/2 + 2, wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := AddAmount(tc.a, tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(0); !errors.ErrInvalidAmount.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAmount(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
