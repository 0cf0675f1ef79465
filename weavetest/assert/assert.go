package assert

import (
	"reflect"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// Tester is the part of testing.TB the helpers below rely on.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil. Typed nil pointers, maps, slices
// and functions count as nil as well.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of wrapped errors.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test unless both values are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the want kind. A nil want expects
// no error at all.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("want no error, got %+v", got)
		}
		return
	}
	if !want.Is(got) {
		t.Fatalf("want %q error, got %+v", want, got)
	}
}

// EventKinds fails the test unless the events were emitted in exactly the
// given order of kinds.
func EventKinds(t Tester, events []piggybank.Event, want ...string) {
	t.Helper()
	got := make([]string, 0, len(events))
	for _, e := range events {
		got = append(got, e.EventKind())
	}
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("unexpected events\nwant %q\n got %q", want, got)
	}
}
