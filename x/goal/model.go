package goal

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
	"github.com/iov-one/piggybank/x"
)

const bucketName = "goals"

// Goal is a savings target of a single user.
type Goal struct {
	Metadata     *piggybank.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID           uint64              `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	User         piggybank.Address   `protobuf:"bytes,3,opt,name=user,proto3,casttype=github.com/iov-one/piggybank.Address" json:"user"`
	TargetAmount uint64              `protobuf:"varint,4,opt,name=target_amount,json=targetAmount,proto3" json:"target_amount"`
	Deadline     piggybank.UnixTime  `protobuf:"varint,5,opt,name=deadline,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"deadline"`
	Balance      uint64              `protobuf:"varint,6,opt,name=balance,proto3" json:"balance"`
}

var _ orm.CloneableData = (*Goal)(nil)

type goalPb Goal

func (*goalPb) ProtoMessage()    {}
func (m *goalPb) Reset()         { *m = goalPb{} }
func (m *goalPb) String() string { return proto.CompactTextString(m) }

func (g *Goal) Marshal() ([]byte, error) { return proto.Marshal((*goalPb)(g)) }
func (g *Goal) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*goalPb)(g)) }

// Validate ensures the goal is valid.
func (g *Goal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", g.Metadata.Validate())
	errs = errors.AppendField(errs, "User", g.User.Validate())
	errs = errors.AppendField(errs, "TargetAmount", x.ValidateAmount(g.TargetAmount))
	errs = errors.AppendField(errs, "Deadline", g.Deadline.Validate())
	return errs
}

// Copy makes a new goal with the same state.
func (g *Goal) Copy() orm.CloneableData {
	return &Goal{
		Metadata:     g.Metadata.Copy(),
		ID:           g.ID,
		User:         g.User.Clone(),
		TargetAmount: g.TargetAmount,
		Deadline:     g.Deadline,
		Balance:      g.Balance,
	}
}

// Achieved returns true if the balance reached the target.
func (g *Goal) Achieved() bool {
	return g.Balance >= g.TargetAmount
}

// Key returns the primary key a goal with given id is stored under.
func Key(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}

// NewBucket returns a bucket of goals with a secondary "user" index.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Goal{},
		orm.WithIndex("user", userIndexer, false),
	)
}

func userIndexer(obj orm.Object) ([]byte, error) {
	g, ok := obj.Value().(*Goal)
	if !ok {
		return nil, errors.WithType(errors.ErrState, obj.Value())
	}
	return g.User, nil
}

// IDSource provides ids for new goals. Ids must never repeat: a goal created
// with an id that is already in use is rejected.
type IDSource interface {
	NextID(db piggybank.KVStore) (uint64, error)
}

// GoalCounter is the default IDSource. It is a sequence stored next to the
// goals, starting at 1.
type GoalCounter struct {
	seq orm.Sequence
}

var _ IDSource = (*GoalCounter)(nil)

// NewGoalCounter returns the counter used by the application.
func NewGoalCounter() *GoalCounter {
	return &GoalCounter{seq: orm.NewSequence("goal", "id")}
}

// NextID increments the counter and returns the new value.
func (c *GoalCounter) NextID(db piggybank.KVStore) (uint64, error) {
	n, err := c.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "goal counter")
	}
	return uint64(n), nil
}

// Current returns the most recently issued id.
func (c *GoalCounter) Current(db piggybank.ReadOnlyKVStore) (uint64, error) {
	n, err := c.seq.Latest(db)
	return uint64(n), err
}

// Reset moves the counter so that the next issued id is id+1.
func (c *GoalCounter) Reset(db piggybank.KVStore, id uint64) error {
	return c.seq.Set(db, int64(id))
}
