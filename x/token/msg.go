package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

const (
	pathInitializeMsg = "token/initialize"
	pathMintMsg       = "token/mint"
)

// InitializeMsg creates the token ledger. It must be signed by the owner.
type InitializeMsg struct {
	Metadata      *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner         piggybank.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/piggybank.Address" json:"owner,omitempty"`
	InitialSupply uint64              `protobuf:"varint,3,opt,name=initial_supply,json=initialSupply,proto3" json:"initial_supply"`
}

// MintMsg issues new tokens. Only the ledger owner can mint.
type MintMsg struct {
	Metadata *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	To       piggybank.Address   `protobuf:"bytes,2,opt,name=to,proto3,casttype=github.com/iov-one/piggybank.Address" json:"to,omitempty"`
	Amount   uint64              `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ piggybank.Msg = (*InitializeMsg)(nil)
var _ piggybank.Msg = (*MintMsg)(nil)

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

// Validate makes sure that this is sensible. Zero supply is allowed.
func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

type mintMsgPb MintMsg

func (*mintMsgPb) ProtoMessage()    {}
func (m *mintMsgPb) Reset()         { *m = mintMsgPb{} }
func (m *mintMsgPb) String() string { return proto.CompactTextString(m) }

func (m *MintMsg) Marshal() ([]byte, error) { return proto.Marshal((*mintMsgPb)(m)) }
func (m *MintMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*mintMsgPb)(m)) }

// Path fulfills piggybank.Msg interface to allow routing
func (MintMsg) Path() string {
	return pathMintMsg
}

// Validate makes sure that this is sensible. The recipient is only named in
// the emitted event, so it must be a well formed address.
func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}
