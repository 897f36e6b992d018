package events

import "context"

// Handler is the single uniform contract the bus invokes for every matching
// event. Implementations must tolerate concurrent invocations when they
// subscribe more than once.
type Handler interface {
	// HandleEvent processes one event. The context is cancelled when the
	// bus is force-stopped; long-running handlers should honor it.
	// A returned error is logged by the bus and does not affect sibling
	// handlers or the dispatch loop.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a plain function to the Handler contract, so callers
// with a synchronous callback don't need a named type.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent invokes the function.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Compile-time interface satisfaction check.
var _ Handler = HandlerFunc(nil)
