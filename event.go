package charity

import (
	"context"
)

// Event is a notification emitted by an extension when the state changes.
type Event interface {
	// Kind returns a short, stable name of the notification, for example
	// "donation".
	Kind() string
}

// EventBuffer collects events emitted during a single operation. Events are
// only meant to be published once the operation was successfully committed,
// so that no notification is ever seen for a rolled back change.
type EventBuffer struct {
	events []Event
}

// Emit appends an event to the buffer.
func (b *EventBuffer) Emit(e Event) {
	b.events = append(b.events, e)
}

// Events returns all collected events in emission order.
func (b *EventBuffer) Events() []Event {
	return b.events
}

// Reset drops all collected events.
func (b *EventBuffer) Reset() {
	b.events = nil
}

// WithEventBuffer returns a context that collects all events emitted with it
// in given buffer.
func WithEventBuffer(ctx context.Context, b *EventBuffer) context.Context {
	return context.WithValue(ctx, contextKeyEvents, b)
}

// Emit records an event in the buffer attached to the context. Events emitted
// with a context without a buffer are dropped.
func Emit(ctx context.Context, e Event) {
	if b, ok := ctx.Value(contextKeyEvents).(*EventBuffer); ok && b != nil {
		b.Emit(e)
	}
}
