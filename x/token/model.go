package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
)

const bucketName = "tokens"

// accountKey is the only key used in the tokens bucket. There is a single
// ledger per application.
var accountKey = []byte("token")

// TokenAccount keeps the state of the token ledger.
type TokenAccount struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner is the only address allowed to mint.
	Owner piggybank.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/piggybank.Address" json:"owner,omitempty"`
	// Supply is the total amount of tokens ever issued.
	Supply uint64 `protobuf:"varint,3,opt,name=supply,proto3" json:"supply"`
}

var _ orm.CloneableData = (*TokenAccount)(nil)

type tokenAccountPb TokenAccount

func (*tokenAccountPb) ProtoMessage()    {}
func (m *tokenAccountPb) Reset()         { *m = tokenAccountPb{} }
func (m *tokenAccountPb) String() string { return proto.CompactTextString(m) }

func (a *TokenAccount) Marshal() ([]byte, error) { return proto.Marshal((*tokenAccountPb)(a)) }
func (a *TokenAccount) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*tokenAccountPb)(a)) }

func (a *TokenAccount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	return errs
}

func (a *TokenAccount) Copy() orm.CloneableData {
	return &TokenAccount{
		Metadata: a.Metadata.Copy(),
		Owner:    a.Owner.Clone(),
		Supply:   a.Supply,
	}
}

// NewBucket returns a bucket holding the token account.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &TokenAccount{})
}

// Load returns the token account. ErrNotFound is returned if the ledger was
// not initialized yet.
func Load(db piggybank.ReadOnlyKVStore) (*TokenAccount, error) {
	return load(db, NewBucket())
}

func load(db piggybank.ReadOnlyKVStore, b orm.ModelBucket) (*TokenAccount, error) {
	var acc TokenAccount
	if err := b.One(db, accountKey, &acc); err != nil {
		return nil, errors.Wrap(err, "token account")
	}
	return &acc, nil
}
