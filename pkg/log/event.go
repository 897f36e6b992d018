package log

import (
	"time"
)

// Event represents a client log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// StreamID uniquely identifies the stream session (UUID).
	StreamID string `cbor:"2,keyasint,omitempty"`

	// BridgeID identifies the bridge the client is attached to.
	BridgeID string `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the bridge address (host:port).
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"7,keyasint,omitempty"`  // Transport layer
	Message     *MessageEvent     `cbor:"8,keyasint,omitempty"`  // Stream layer (parsed)
	StateChange *StateChangeEvent `cbor:"9,keyasint,omitempty"`  // Lifecycle transitions
	Error       *ErrorEventData   `cbor:"10,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which client layer captured the event.
type Layer uint8

const (
	// LayerTransport is the SSE framing layer (raw text frames).
	LayerTransport Layer = 0
	// LayerStream is the message parsing layer (parsed stream messages).
	LayerStream Layer = 1
	// LayerService is the orchestration layer (producer/bus/service).
	LayerService Layer = 2
	// LayerCache is the state cache layer.
	LayerCache Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerStream:
		return "STREAM"
	case LayerService:
		return "SERVICE"
	case LayerCache:
		return "CACHE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates a raw transport frame.
	CategoryFrame Category = 0
	// CategoryMessage indicates a parsed stream message or dispatched event.
	CategoryMessage Category = 1
	// CategoryState indicates a lifecycle state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures a raw SSE frame at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame text (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a parsed stream message or a dispatched internal
// event at the stream/service layer.
type MessageEvent struct {
	// MessageID is the stream message identifier, if the bridge sent one.
	MessageID string `cbor:"1,keyasint,omitempty"`

	// Envelopes is the number of change envelopes in the message.
	Envelopes int `cbor:"2,keyasint,omitempty"`

	// Events is the number of internal events produced or dispatched.
	Events int `cbor:"3,keyasint,omitempty"`

	// SubscriptionID identifies the subscription for dispatch events.
	SubscriptionID string `cbor:"4,keyasint,omitempty"`

	// ResourceType is the resource type for dispatch events.
	ResourceType string `cbor:"5,keyasint,omitempty"`

	// ResourceID is the resource ID for dispatch events.
	ResourceID string `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures component lifecycle transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a transport connection state change.
	StateEntityConnection StateEntity = 0
	// StateEntityProducer indicates a producer state change.
	StateEntityProducer StateEntity = 1
	// StateEntityBus indicates a bus state change.
	StateEntityBus StateEntity = 2
	// StateEntityService indicates an event service state change.
	StateEntityService StateEntity = 3
	// StateEntityCache indicates a cache state change.
	StateEntityCache StateEntity = 4
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntityProducer:
		return "PRODUCER"
	case StateEntityBus:
		return "BUS"
	case StateEntityService:
		return "SERVICE"
	case StateEntityCache:
		return "CACHE"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// ErrorEvent builds an error event for the given layer. Components use it
// for the caught-and-logged error path.
func ErrorEvent(layer Layer, context string, err error) Event {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Event{
		Timestamp: time.Now(),
		Layer:     layer,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Layer:   layer,
			Message: msg,
			Context: context,
		},
	}
}

// StateEvent builds a lifecycle state-change event.
func StateEvent(entity StateEntity, oldState, newState, reason string) Event {
	return Event{
		Timestamp: time.Now(),
		Layer:     LayerService,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	}
}
