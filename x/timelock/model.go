package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
)

const bucketName = "locks"

// lockSeq issues vault ids.
var lockSeq = orm.NewSequence("timelock", "id")

// LockAccount is a vault holding a balance until UnlockTime.
type LockAccount struct {
	Metadata   *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner      piggybank.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/piggybank.Address" json:"owner"`
	UnlockTime piggybank.UnixTime  `protobuf:"varint,3,opt,name=unlock_time,json=unlockTime,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"unlock_time"`
	Balance    uint64              `protobuf:"varint,4,opt,name=balance,proto3" json:"balance"`
}

var _ orm.CloneableData = (*LockAccount)(nil)

type lockAccountPb LockAccount

func (*lockAccountPb) ProtoMessage()    {}
func (m *lockAccountPb) Reset()         { *m = lockAccountPb{} }
func (m *lockAccountPb) String() string { return proto.CompactTextString(m) }

func (l *LockAccount) Marshal() ([]byte, error) { return proto.Marshal((*lockAccountPb)(l)) }
func (l *LockAccount) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*lockAccountPb)(l)) }

func (l *LockAccount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", l.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", l.Owner.Validate())
	errs = errors.AppendField(errs, "UnlockTime", l.UnlockTime.Validate())
	return errs
}

func (l *LockAccount) Copy() orm.CloneableData {
	return &LockAccount{
		Metadata:   l.Metadata.Copy(),
		Owner:      l.Owner.Clone(),
		UnlockTime: l.UnlockTime,
		Balance:    l.Balance,
	}
}

// NewBucket returns a bucket of vaults with a secondary "owner" index.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &LockAccount{},
		orm.WithIndex("owner", ownerIndexer, false),
	)
}

func ownerIndexer(obj orm.Object) ([]byte, error) {
	l, ok := obj.Value().(*LockAccount)
	if !ok {
		return nil, errors.WithType(errors.ErrState, obj.Value())
	}
	return l.Owner, nil
}
