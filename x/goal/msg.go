package goal

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/x"
)

const (
	pathCreateMsg     = "goal/create"
	pathContributeMsg = "goal/contribute"
)

// CreateMsg creates a new goal owned by the signer.
type CreateMsg struct {
	Metadata     *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TargetAmount uint64              `protobuf:"varint,2,opt,name=target_amount,json=targetAmount,proto3" json:"target_amount"`
	Deadline     piggybank.UnixTime  `protobuf:"varint,3,opt,name=deadline,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"deadline"`
}

// ContributeMsg adds to the balance of a goal.
type ContributeMsg struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	GoalID   uint64              `protobuf:"varint,2,opt,name=goal_id,json=goalId,proto3" json:"goal_id"`
	Amount   uint64              `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ piggybank.Msg = (*CreateMsg)(nil)
var _ piggybank.Msg = (*ContributeMsg)(nil)

type createMsgPb CreateMsg

func (*createMsgPb) ProtoMessage()    {}
func (m *createMsgPb) Reset()         { *m = createMsgPb{} }
func (m *createMsgPb) String() string { return proto.CompactTextString(m) }

func (m *CreateMsg) Marshal() ([]byte, error) { return proto.Marshal((*createMsgPb)(m)) }
func (m *CreateMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*createMsgPb)(m)) }

// Path fulfills piggybank.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible. The deadline can only be
// checked against the block time, which is done by the handler.
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "TargetAmount", x.ValidateAmount(m.TargetAmount))
	return errs
}

type contributeMsgPb ContributeMsg

func (*contributeMsgPb) ProtoMessage()    {}
func (m *contributeMsgPb) Reset()         { *m = contributeMsgPb{} }
func (m *contributeMsgPb) String() string { return proto.CompactTextString(m) }

func (m *ContributeMsg) Marshal() ([]byte, error) { return proto.Marshal((*contributeMsgPb)(m)) }
func (m *ContributeMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*contributeMsgPb)(m)) }

// Path fulfills piggybank.Msg interface to allow routing
func (ContributeMsg) Path() string {
	return pathContributeMsg
}

func (m *ContributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Amount", x.ValidateAmount(m.Amount))
	return errs
}
