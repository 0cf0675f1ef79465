package weavetest

import (
	"testing"

	"github.com/iov-one/piggybank"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. The test fails if the address cannot be parsed.
func ParseAddress(t testing.TB, encodedAddress string) piggybank.Address {
	t.Helper()

	addr, err := piggybank.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
