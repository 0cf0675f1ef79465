package piggybank

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank/errors"
)

// Metadata is embedded in every model and message. It carries the schema
// version the entity was created with.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if the metadata is missing or declares an
// unsupported schema version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. It is helpful when implementing
// orm.CloneableData.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
