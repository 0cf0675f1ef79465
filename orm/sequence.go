package orm

import (
	"encoding/binary"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// Sequence maintains a counter and generates a series of keys. Each key is
// greater than the last, both by NextInt and by bytes.Compare on NextVal.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. The counter state is kept under
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db piggybank.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db piggybank.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the most recently issued value without modifying the
// sequence. Zero means no value was issued yet.
func (s *Sequence) Latest(db piggybank.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw), nil
}

func (s *Sequence) increment(db piggybank.KVStore, inc int64) (int64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	val += inc
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(err, "cannot store sequence")
	}
	return val, raw, nil
}

// DecodeSequence reads an 8 byte big endian value. Nil is zero.
func DecodeSequence(bz []byte) int64 {
	if len(bz) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}

// EncodeSequence writes val as 8 bytes, big endian, so the byte order
// matches the numeric order.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence returns an error if this is not an 8 byte sequence value.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}

// Set moves the sequence to given value. The next issued value is val+1.
// It is meant for genesis import, where the ids were issued elsewhere.
func (s *Sequence) Set(db piggybank.KVStore, val int64) error {
	if val < 0 {
		return errors.Wrap(errors.ErrInput, "negative sequence value")
	}
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return errors.Wrap(err, "cannot store sequence")
	}
	return nil
}
