package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank/errors"
)

// Counter is a minimal model used to exercise the buckets.
type Counter struct {
	Owner string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

type counterPb Counter

func (*counterPb) ProtoMessage()    {}
func (m *counterPb) Reset()         { *m = counterPb{} }
func (m *counterPb) String() string { return proto.CompactTextString(m) }

func (c *Counter) Marshal() ([]byte, error) { return proto.Marshal((*counterPb)(c)) }
func (c *Counter) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*counterPb)(c)) }

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

func counterByOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	if c.Owner == "" {
		return nil, nil
	}
	return []byte(c.Owner), nil
}
