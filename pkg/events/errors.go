package events

import "errors"

// Pipeline errors.
var (
	// ErrNotRunning indicates an operation on a component before Start.
	ErrNotRunning = errors.New("not running")

	// ErrAlreadyRunning indicates Start was called on a running bus.
	ErrAlreadyRunning = errors.New("already running")

	// ErrNilHandler indicates Subscribe was called without a handler.
	ErrNilHandler = errors.New("handler must not be nil")
)
