package events

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// testEvent is a minimal event implementation.
type testEvent struct {
	Kind  string `json:"-"`
	Value int    `json:"value"`
}

func (e *testEvent) Marshal() ([]byte, error) { return []byte{byte(e.Value)}, nil }
func (e *testEvent) EventKind() string        { return e.Kind }

func emitted(height int64, evs ...piggybank.Event) []piggybank.EmittedEvent {
	out := make([]piggybank.EmittedEvent, len(evs))
	for i, e := range evs {
		out[i] = piggybank.EmittedEvent{
			Height: height,
			Time:   time.Unix(1500000000+height, 0),
			Event:  e,
		}
	}
	return out
}

func TestObservers(t *testing.T) {
	var o Observers
	var first, second []string
	o.Subscribe(func(e piggybank.EmittedEvent) { first = append(first, e.Event.EventKind()) })
	o.Subscribe(func(e piggybank.EmittedEvent) { second = append(second, e.Event.EventKind()) })

	evs := emitted(3, &testEvent{Kind: "a"}, &testEvent{Kind: "b"})
	require.NoError(t, o.Publish(context.Background(), evs))

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, []string{"a", "b"}, second)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.NewTMLogger(&buf))

	evs := emitted(7, &testEvent{Kind: "goal/created", Value: 4})
	require.NoError(t, sink.Publish(context.Background(), evs))

	out := buf.String()
	assert.True(t, strings.Contains(out, "kind=goal/created"), out)
	assert.True(t, strings.Contains(out, "height=7"), out)
	assert.True(t, strings.Contains(out, "payload="), out)
}

type failingSink struct {
	err   error
	calls int
}

func (s *failingSink) Publish(piggybank.Context, []piggybank.EmittedEvent) error {
	s.calls++
	return s.err
}

func TestMulti(t *testing.T) {
	bad := &failingSink{err: errors.ErrDatabase.New("down")}
	good := &failingSink{}
	var o Observers
	var seen int
	o.Subscribe(func(piggybank.EmittedEvent) { seen++ })

	sink := Multi(bad, good, &o)
	err := sink.Publish(context.Background(), emitted(1, &testEvent{Kind: "x"}))

	assert.True(t, errors.ErrDatabase.Is(err))
	assert.Equal(t, 1, bad.calls)
	assert.Equal(t, 1, good.calls)
	assert.Equal(t, 1, seen)
}
