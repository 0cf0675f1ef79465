package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// ResultSet is the query response encoding. Keys and values of a query
// result are returned as two separate result sets of equal length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetPb ResultSet

func (*resultSetPb) ProtoMessage()    {}
func (m *resultSetPb) Reset()         { *m = resultSetPb{} }
func (m *resultSetPb) String() string { return proto.CompactTextString(m) }

func (r *ResultSet) Marshal() ([]byte, error) { return proto.Marshal((*resultSetPb)(r)) }
func (r *ResultSet) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*resultSetPb)(r)) }

// ResultsFromKeys returns a ResultSet of all keys given a set of models
func ResultsFromKeys(models []piggybank.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of models
func ResultsFromValues(models []piggybank.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes them a
// consistent whole again.
func JoinResults(keys, values *ResultSet) ([]piggybank.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	mods := make([]piggybank.Model, len(kref))
	for i := range mods {
		mods[i] = piggybank.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a result set, and if it is not empty,
// unmarshal the first result into o.
func UnmarshalOneResult(bz []byte, o piggybank.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
