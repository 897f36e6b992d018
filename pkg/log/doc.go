// Package log provides structured logging for the event-stream client.
//
// Components do not write to a global logger. Each component receives a
// Logger at construction time and emits typed Event values describing what
// happened at its layer: raw frames at the transport layer, parsed stream
// messages at the stream layer, lifecycle transitions and handler failures
// at the service layer.
//
// Several Logger implementations are provided:
//
//   - NoopLogger discards everything (the default when nil is passed).
//   - SlogAdapter forwards events to a log/slog Logger for console output.
//   - FileLogger appends CBOR-encoded events to a capture file.
//   - MultiLogger fans out to several loggers at once.
//
// Capture files written by FileLogger can be replayed with Reader, which
// supports filtering by stream, layer, category, and time range.
package log
