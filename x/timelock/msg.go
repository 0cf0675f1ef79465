package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
)

const (
	pathInitializeMsg = "timelock/initialize"
	pathDepositMsg    = "timelock/deposit"
	pathWithdrawMsg   = "timelock/withdraw"
)

// InitializeMsg creates a vault owned by the signer.
type InitializeMsg struct {
	Metadata   *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	UnlockTime piggybank.UnixTime  `protobuf:"varint,2,opt,name=unlock_time,json=unlockTime,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"unlock_time"`
}

// DepositMsg adds to the balance of a vault.
type DepositMsg struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	LockID   []byte              `protobuf:"bytes,2,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
	Amount   uint64              `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

// WithdrawMsg drains a vault into the owner's wallet.
type WithdrawMsg struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	LockID   []byte              `protobuf:"bytes,2,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
}

var (
	_ piggybank.Msg = (*InitializeMsg)(nil)
	_ piggybank.Msg = (*DepositMsg)(nil)
	_ piggybank.Msg = (*WithdrawMsg)(nil)
)

type initializeMsgPb InitializeMsg

func (*initializeMsgPb) ProtoMessage()    {}
func (m *initializeMsgPb) Reset()         { *m = initializeMsgPb{} }
func (m *initializeMsgPb) String() string { return proto.CompactTextString(m) }

func (m *InitializeMsg) Marshal() ([]byte, error) { return proto.Marshal((*initializeMsgPb)(m)) }
func (m *InitializeMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*initializeMsgPb)(m)) }

// Path fulfills piggybank.Msg interface to allow routing
func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) Validate() error {
	return errors.Field("Metadata", m.Metadata.Validate(), "invalid metadata")
}

type depositMsgPb DepositMsg

func (*depositMsgPb) ProtoMessage()    {}
func (m *depositMsgPb) Reset()         { *m = depositMsgPb{} }
func (m *depositMsgPb) String() string { return proto.CompactTextString(m) }

func (m *DepositMsg) Marshal() ([]byte, error) { return proto.Marshal((*depositMsgPb)(m)) }
func (m *DepositMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*depositMsgPb)(m)) }

// Path fulfills piggybank.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate does not require a positive amount. A zero deposit is accepted
// and changes nothing.
func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "LockID", orm.ValidateSequence(m.LockID))
	return errs
}

type withdrawMsgPb WithdrawMsg

func (*withdrawMsgPb) ProtoMessage()    {}
func (m *withdrawMsgPb) Reset()         { *m = withdrawMsgPb{} }
func (m *withdrawMsgPb) String() string { return proto.CompactTextString(m) }

func (m *WithdrawMsg) Marshal() ([]byte, error) { return proto.Marshal((*withdrawMsgPb)(m)) }
func (m *WithdrawMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*withdrawMsgPb)(m)) }

// Path fulfills piggybank.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "LockID", orm.ValidateSequence(m.LockID))
	return errs
}
