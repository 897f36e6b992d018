// Package events implements the event pipeline of the client: producing
// parsed stream messages from the transport, flattening them into internal
// events, and fanning those events out to filterable subscribers.
//
// # Pipeline
//
//	┌────────────────────────────────┐
//	│   Subscribers (handlers)       │
//	├────────────────────────────────┤
//	│   Bus (queue + dispatch)       │
//	├────────────────────────────────┤
//	│   Transformer (flatten)        │
//	├────────────────────────────────┤
//	│   Producer (parse frames)      │
//	├────────────────────────────────┤
//	│   Transport (pkg/sse)          │
//	└────────────────────────────────┘
//
// Service wires the pipeline together and is the only type callers need for
// stream lifecycle and subscription management.
//
// # Ordering
//
// Events derived from one stream message preserve envelope order, then
// change order within each envelope. The bus dispatches events to the
// subscriber population in publish order: all handlers for one event finish
// before the next event is dispatched. Delivery order among handlers of the
// same event is unspecified.
//
// # Error containment
//
// A malformed frame, a malformed change, or a failing handler is logged and
// skipped at the smallest possible scope; none of them stop the stream.
// Only transport failure past the retry budget ends the flow, surfaced via
// Service.IsStreaming turning false.
package events
