package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/piggybank/errors"
)

// Encode returns the bech32 text form of payload, prefixed with hrp.
func Encode(hrp string, payload []byte) (string, error) {
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	enc, err := bech32.Encode(hrp, words)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return enc, nil
}

// Decode returns the human readable part and the payload of a bech32
// string. Checksum failures are reported as ErrInput.
func Decode(enc string) (string, []byte, error) {
	hrp, words, err := bech32.Decode(enc)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return hrp, payload, nil
}

// DecodeWithPrefix decodes enc and fails unless it carries the expected
// human readable part, so that an address of another network is refused.
func DecodeWithPrefix(enc, hrp string) ([]byte, error) {
	got, payload, err := Decode(enc)
	if err != nil {
		return nil, err
	}
	if got != hrp {
		return nil, errors.Wrapf(errors.ErrInput, "want %q prefix, got %q", hrp, got)
	}
	return payload, nil
}
