package orm

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank/errors"
)

// MultiRef holds a sorted set of references. A non unique index stores one
// MultiRef per indexed value.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

var _ CloneableData = (*MultiRef)(nil)

type multiRefPb MultiRef

func (*multiRefPb) ProtoMessage()    {}
func (m *multiRefPb) Reset()         { *m = multiRefPb{} }
func (m *multiRefPb) String() string { return proto.CompactTextString(m) }

// Marshal serializes the reference set.
func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*multiRefPb)(m))
}

// Unmarshal loads the reference set from its binary form.
func (m *MultiRef) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*multiRefPb)(m))
}

// NewMultiRef creates a MultiRef with any number of initial references.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// GetRefs returns all references, in ascending order.
func (m *MultiRef) GetRefs() [][]byte {
	if m == nil {
		return nil
	}
	return m.Refs
}

// Add inserts this reference in the multiref, sorted by order.
// Returns an error if already there.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the multiref.
// Returns an error if not there.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns where the ref is (or where it should be inserted) and
// whether it was found.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	for i, r := range m.Refs {
		switch bytes.Compare(ref, r) {
		case -1:
			return i, false
		case 0:
			return i, true
		}
	}
	return len(m.Refs), false
}

// Copy does a shallow copy of the slice of refs.
func (m *MultiRef) Copy() CloneableData {
	refs := make([][]byte, len(m.Refs))
	copy(refs, m.Refs)
	return &MultiRef{Refs: refs}
}

// Validate returns an error if empty.
func (m *MultiRef) Validate() error {
	if len(m.GetRefs()) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}
