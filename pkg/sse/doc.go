// Package sse implements the server-push transport for the Hue bridge.
//
// The bridge exposes its event stream over HTTPS as Server-Sent Events:
// a long-lived GET on /eventstream/clip/v2 that yields blank-line-terminated
// blocks of "key: value" lines. This package owns the network connection,
// reassembles those blocks into complete text frames, and reconnects with a
// bounded retry count when the stream drops.
//
// # Lifecycle
//
// Connect records the endpoint but performs no I/O; the first request
// happens when Listen is called. Listen returns a channel of frames that
// stays open across reconnects and closes when the retry budget is
// exhausted, the context is cancelled, or Disconnect is called. After the
// channel closes, Err reports the terminal error, if any.
//
// # Framing
//
// Non-blank lines are accumulated; a blank line flushes the accumulated
// lines (joined with newlines) as one frame. When the underlying stream
// terminates with a non-empty buffer, the partial frame is flushed before
// the reconnect logic runs.
package sse
