package piggybank

import (
	"time"
)

// EventTagKey is the ABCI tag key under which event kinds are indexed.
const EventTagKey = "event"

// Event is a notification describing a completed state transition, for
// example a goal contribution or a vault withdrawal.
//
// Handlers return events in the DeliverResult. An event of a transaction
// that failed is never published.
type Event interface {
	Marshaller

	// EventKind returns the name used to route and store the event, for
	// example "goal/achieved".
	EventKind() string
}

// EmittedEvent is an event together with the block that committed it.
type EmittedEvent struct {
	Height int64
	Time   time.Time
	Event  Event
}

// EventSink receives events after the block that produced them was
// committed. Delivery is at most once and an error is never propagated back
// to the state machine.
type EventSink interface {
	Publish(ctx Context, events []EmittedEvent) error
}
