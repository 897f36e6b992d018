package sse

// State represents the transport connection state.
type State uint8

const (
	// StateDisconnected indicates no active connection.
	StateDisconnected State = iota

	// StateConnected indicates Connect has been called and Listen may run.
	StateConnected

	// StateListening indicates an active stream request.
	StateListening

	// StateReconnecting indicates the retry loop is between attempts.
	StateReconnecting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateListening:
		return "LISTENING"
	case StateReconnecting:
		return "RECONNECTING"
	default:
		return "UNKNOWN"
	}
}
