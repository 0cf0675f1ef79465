package weavetest

import (
	"encoding/binary"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new random key.
func NewCondition() piggybank.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the binary representation of an id as assigned by an
// orm.Sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
