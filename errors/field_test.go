package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		err   error
		field string
		want  int
	}{
		"nil": {
			err:   nil,
			field: "Amount",
			want:  0,
		},
		"single field": {
			err:   Field("Amount", ErrInvalidAmount, "must be positive"),
			field: "Amount",
			want:  1,
		},
		"other field": {
			err:   Field("Deadline", ErrInput, "required"),
			field: "Amount",
			want:  0,
		},
		"wrapped field": {
			err:   Wrap(Field("Amount", ErrInvalidAmount, ""), "msg"),
			field: "Amount",
			want:  1,
		},
		"multiple fields": {
			err: Append(
				Field("Amount", ErrInvalidAmount, "zero"),
				Field("Metadata", ErrEmpty.New("missing"), ""),
				Field("Amount", ErrOverflow, "too big"),
			),
			field: "Amount",
			want:  2,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := FieldErrors(tc.err, tc.field); len(got) != tc.want {
				t.Fatalf("want %d errors, got %d: %v", tc.want, len(got), got)
			}
		})
	}
}

func TestFieldNil(t *testing.T) {
	if err := Field("Amount", nil, "ignored"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := AppendField(nil, "Amount", nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}
