package goal

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
)

const (
	GoalCreatedEventKind  = "goal/created"
	ContributionEventKind = "goal/contribution"
	GoalAchievedEventKind = "goal/achieved"
)

// GoalCreated is emitted when a new goal is stored.
type GoalCreated struct {
	GoalID       uint64             `protobuf:"varint,1,opt,name=goal_id,json=goalId,proto3" json:"goal_id"`
	User         piggybank.Address  `protobuf:"bytes,2,opt,name=user,proto3,casttype=github.com/iov-one/piggybank.Address" json:"user"`
	TargetAmount uint64             `protobuf:"varint,3,opt,name=target_amount,json=targetAmount,proto3" json:"target_amount"`
	Deadline     piggybank.UnixTime `protobuf:"varint,4,opt,name=deadline,proto3,casttype=github.com/iov-one/piggybank.UnixTime" json:"deadline"`
}

// Contribution is emitted for every accepted contribution. User is the
// contributor, not necessarily the goal owner.
type Contribution struct {
	GoalID uint64            `protobuf:"varint,1,opt,name=goal_id,json=goalId,proto3" json:"goal_id"`
	User   piggybank.Address `protobuf:"bytes,2,opt,name=user,proto3,casttype=github.com/iov-one/piggybank.Address" json:"user"`
	Amount uint64            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

// GoalAchieved is emitted after a contribution that leaves the balance at
// or above the target. User is the contributor.
type GoalAchieved struct {
	GoalID uint64            `protobuf:"varint,1,opt,name=goal_id,json=goalId,proto3" json:"goal_id"`
	User   piggybank.Address `protobuf:"bytes,2,opt,name=user,proto3,casttype=github.com/iov-one/piggybank.Address" json:"user"`
}

var (
	_ piggybank.Event = (*GoalCreated)(nil)
	_ piggybank.Event = (*Contribution)(nil)
	_ piggybank.Event = (*GoalAchieved)(nil)
)

type goalCreatedPb GoalCreated

func (*goalCreatedPb) ProtoMessage()    {}
func (m *goalCreatedPb) Reset()         { *m = goalCreatedPb{} }
func (m *goalCreatedPb) String() string { return proto.CompactTextString(m) }

func (e *GoalCreated) Marshal() ([]byte, error) { return proto.Marshal((*goalCreatedPb)(e)) }
func (e *GoalCreated) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*goalCreatedPb)(e)) }
func (GoalCreated) EventKind() string           { return GoalCreatedEventKind }

type contributionPb Contribution

func (*contributionPb) ProtoMessage()    {}
func (m *contributionPb) Reset()         { *m = contributionPb{} }
func (m *contributionPb) String() string { return proto.CompactTextString(m) }

func (e *Contribution) Marshal() ([]byte, error) { return proto.Marshal((*contributionPb)(e)) }
func (e *Contribution) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*contributionPb)(e)) }
func (Contribution) EventKind() string           { return ContributionEventKind }

type goalAchievedPb GoalAchieved

func (*goalAchievedPb) ProtoMessage()    {}
func (m *goalAchievedPb) Reset()         { *m = goalAchievedPb{} }
func (m *goalAchievedPb) String() string { return proto.CompactTextString(m) }

func (e *GoalAchieved) Marshal() ([]byte, error) { return proto.Marshal((*goalAchievedPb)(e)) }
func (e *GoalAchieved) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*goalAchievedPb)(e)) }
func (GoalAchieved) EventKind() string           { return GoalAchievedEventKind }
