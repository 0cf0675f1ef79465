package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
)

// MintEventKind is the kind under which mint notifications are published.
const MintEventKind = "token/mint"

// MintEvent is emitted for every successful mint.
type MintEvent struct {
	To     piggybank.Address `protobuf:"bytes,1,opt,name=to,proto3,casttype=github.com/iov-one/piggybank.Address" json:"to"`
	Amount uint64            `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

var _ piggybank.Event = (*MintEvent)(nil)

type mintEventPb MintEvent

func (*mintEventPb) ProtoMessage()    {}
func (m *mintEventPb) Reset()         { *m = mintEventPb{} }
func (m *mintEventPb) String() string { return proto.CompactTextString(m) }

func (e *MintEvent) Marshal() ([]byte, error) { return proto.Marshal((*mintEventPb)(e)) }
func (e *MintEvent) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*mintEventPb)(e)) }

func (MintEvent) EventKind() string { return MintEventKind }
