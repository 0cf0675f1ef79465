package goal

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
)

// Progress is a read only view of a goal.
type Progress struct {
	TargetAmount uint64             `protobuf:"varint,1,opt,name=target_amount,json=targetAmount,proto3" json:"target_amount"`
	Balance      uint64             `protobuf:"varint,2,opt,name=balance,proto3" json:"balance"`
	Deadline     piggybank.UnixTime `protobuf:"varint,3,opt,name=deadline,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"deadline"`
	ID           uint64             `protobuf:"varint,4,opt,name=id,proto3" json:"id"`
}

type progressPb Progress

func (*progressPb) ProtoMessage()    {}
func (m *progressPb) Reset()         { *m = progressPb{} }
func (m *progressPb) String() string { return proto.CompactTextString(m) }

func (p *Progress) Marshal() ([]byte, error) { return proto.Marshal((*progressPb)(p)) }
func (p *Progress) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*progressPb)(p)) }

// ProgressOf returns the progress view of given goal.
func ProgressOf(g *Goal) *Progress {
	return &Progress{
		TargetAmount: g.TargetAmount,
		Balance:      g.Balance,
		Deadline:     g.Deadline,
		ID:           g.ID,
	}
}

// GetProgress loads the goal with given id and returns its progress. It does
// not modify the store.
func GetProgress(db piggybank.ReadOnlyKVStore, id uint64) (*Progress, error) {
	var g Goal
	if err := NewBucket().One(db, Key(id), &g); err != nil {
		return nil, errors.Wrapf(err, "goal %d", id)
	}
	return ProgressOf(&g), nil
}

// progressQuery serves "/goals/progress". The query data is the 8 byte goal
// id. A missing goal returns no result.
type progressQuery struct {
	bucket orm.ModelBucket
}

var _ piggybank.QueryHandler = progressQuery{}

func (q progressQuery) Query(db piggybank.ReadOnlyKVStore, mod string, data []byte) ([]piggybank.Model, error) {
	if mod != piggybank.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod: %q", mod)
	}
	if err := orm.ValidateSequence(data); err != nil {
		return nil, errors.Wrap(err, "goal id")
	}
	var g Goal
	switch err := q.bucket.One(db, data, &g); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	raw, err := ProgressOf(&g).Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal progress")
	}
	return []piggybank.Model{piggybank.Pair(data, raw)}, nil
}
