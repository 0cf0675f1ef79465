package events

import (
	"encoding/json"
	"sync"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Observer is notified about every published event.
type Observer func(piggybank.EmittedEvent)

// Observers is a sink that calls all subscribed observers for each event,
// in the order of subscription. It is safe for concurrent use.
type Observers struct {
	mu  sync.RWMutex
	obs []Observer
}

var _ piggybank.EventSink = (*Observers)(nil)

// Subscribe registers fn to be called for every published event.
func (o *Observers) Subscribe(fn Observer) {
	o.mu.Lock()
	o.obs = append(o.obs, fn)
	o.mu.Unlock()
}

func (o *Observers) Publish(ctx piggybank.Context, events []piggybank.EmittedEvent) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, e := range events {
		for _, fn := range o.obs {
			fn(e)
		}
	}
	return nil
}

// LogSink writes one info line per event.
type LogSink struct {
	logger log.Logger
}

var _ piggybank.EventSink = LogSink{}

// NewLogSink returns a sink writing to given logger.
func NewLogSink(logger log.Logger) LogSink {
	return LogSink{logger: logger.With("module", "events")}
}

func (s LogSink) Publish(ctx piggybank.Context, events []piggybank.EmittedEvent) error {
	for _, e := range events {
		payload, err := json.Marshal(e.Event)
		if err != nil {
			return errors.Wrapf(errors.ErrState, "cannot serialize %s event: %s", e.Event.EventKind(), err)
		}
		s.logger.Info("event",
			"kind", e.Event.EventKind(),
			"height", e.Height,
			"payload", string(payload))
	}
	return nil
}

// Multi publishes to all given sinks. Every sink is called even if a
// previous one failed. All failures are returned together.
func Multi(sinks ...piggybank.EventSink) piggybank.EventSink {
	return multiSink(sinks)
}

type multiSink []piggybank.EventSink

func (m multiSink) Publish(ctx piggybank.Context, events []piggybank.EmittedEvent) error {
	var errs error
	for _, s := range m {
		errs = errors.Append(errs, s.Publish(ctx, events))
	}
	return errs
}
