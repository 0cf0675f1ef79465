package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
)

// WithdrawalEventKind is the kind under which withdrawals are published.
const WithdrawalEventKind = "timelock/withdrawal"

// WithdrawalEvent is emitted when a vault is drained. Amount is the balance
// the vault held right before the withdrawal.
type WithdrawalEvent struct {
	LockID []byte             `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
	Owner  piggybank.Address  `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/piggybank.Address" json:"owner"`
	Amount uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	When   piggybank.UnixTime `protobuf:"varint,4,opt,name=when,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"when"`
}

var _ piggybank.Event = (*WithdrawalEvent)(nil)

type withdrawalEventPb WithdrawalEvent

func (*withdrawalEventPb) ProtoMessage()    {}
func (m *withdrawalEventPb) Reset()         { *m = withdrawalEventPb{} }
func (m *withdrawalEventPb) String() string { return proto.CompactTextString(m) }

func (e *WithdrawalEvent) Marshal() ([]byte, error) { return proto.Marshal((*withdrawalEventPb)(e)) }
func (e *WithdrawalEvent) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*withdrawalEventPb)(e))
}

func (WithdrawalEvent) EventKind() string { return WithdrawalEventKind }
