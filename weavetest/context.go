package weavetest

import (
	"context"

	"github.com/iov-one/charity"
)

// NewContext returns a context of an operation requested by given caller,
// together with the buffer that collects all events emitted using that
// context.
func NewContext(caller charity.Address) (context.Context, *charity.EventBuffer) {
	events := &charity.EventBuffer{}
	ctx := charity.WithEventBuffer(context.Background(), events)
	if caller != nil {
		ctx = charity.WithCaller(ctx, caller)
	}
	return ctx, events
}
