package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/crypto"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// StdSignature represents the signature, the identity of the signer (the
// Pubkey), and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// UserData is the nonce state of a single signer.
type UserData struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   *crypto.PublicKey   `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64               `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.CloneableData = (*UserData)(nil)

type userDataPb UserData

func (*userDataPb) ProtoMessage()    {}
func (m *userDataPb) Reset()         { *m = userDataPb{} }
func (m *userDataPb) String() string { return proto.CompactTextString(m) }

func (u *UserData) Marshal() ([]byte, error) { return proto.Marshal((*userDataPb)(u)) }
func (u *UserData) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*userDataPb)(u)) }

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	if u.Pubkey == nil {
		errs = errors.Append(errs, errors.Field("Pubkey", errors.ErrEmpty, "required"))
	}
	return errs
}

func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Metadata: u.Metadata.Copy(),
		Sequence: u.Sequence,
		Pubkey:   u.Pubkey,
	}
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	// The greatest nonce a javascript client can represent is 2^53 - 1.
	const maxSequenceValue = (1 << 53) - 1
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns the bucket keeping the nonce of every signer, keyed by
// the signer address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadOrCreate returns the stored user data of the key owner, or a fresh
// record starting with sequence zero.
func loadOrCreate(db piggybank.ReadOnlyKVStore, b orm.ModelBucket, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &piggybank.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, err
	}
}
