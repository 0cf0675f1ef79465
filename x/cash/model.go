package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the spendable balance of a single address. The address is the
// key under which the wallet is stored.
type Wallet struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Balance  uint64              `protobuf:"varint,2,opt,name=balance,proto3" json:"balance"`
}

var _ orm.CloneableData = (*Wallet)(nil)

type walletPb Wallet

func (*walletPb) ProtoMessage()    {}
func (m *walletPb) Reset()         { *m = walletPb{} }
func (m *walletPb) String() string { return proto.CompactTextString(m) }

func (w *Wallet) Marshal() ([]byte, error) { return proto.Marshal((*walletPb)(w)) }
func (w *Wallet) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*walletPb)(w)) }

// Validate ensures the wallet is valid.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Field("Metadata", err, "invalid metadata")
	}
	return nil
}

// Copy makes a new wallet with the same balance
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Balance:  w.Balance,
	}
}

// NewBucket returns a bucket of wallets keyed by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// RegisterQuery will register the wallets as "/wallets"
func RegisterQuery(qr piggybank.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
