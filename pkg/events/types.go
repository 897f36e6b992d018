package events

import (
	"encoding/json"
	"time"

	"github.com/hueclip/hueclip-go/pkg/clip"
)

// Kind classifies a change envelope.
type Kind string

// Envelope kinds emitted by the bridge.
const (
	KindUpdate Kind = "update"
	KindAdd    Kind = "add"
	KindDelete Kind = "delete"
	KindError  Kind = "error"
)

// ResourceChange is the smallest unit of state delta for a single
// addressable resource within an envelope. Beyond the typed fragments, the
// full change object is retained in Raw so downstream consumers can decode
// fields this package does not model yet.
type ResourceChange struct {
	ID       string                   `json:"id"`
	IDV1     string                   `json:"id_v1,omitempty"`
	Type     clip.ResourceType        `json:"type"`
	Owner    *clip.ResourceIdentifier `json:"owner,omitempty"`
	On       *clip.On                 `json:"on,omitempty"`
	Dimming  *clip.Dimming            `json:"dimming,omitempty"`
	Color    *clip.Color              `json:"color,omitempty"`
	Status   *clip.SceneStatus        `json:"status,omitempty"`
	Children []clip.ResourceIdentifier `json:"children,omitempty"`
	Metadata *clip.Metadata           `json:"metadata,omitempty"`

	// Raw is the change object as received, for fields beyond the typed set.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed fields and retains the raw object.
func (r *ResourceChange) UnmarshalJSON(data []byte) error {
	type alias ResourceChange
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = ResourceChange(a)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Envelope is one bridge-level notification grouping multiple resource
// changes under one kind and timestamp.
type Envelope struct {
	ID           string           `json:"id"`
	Kind         Kind             `json:"type"`
	CreationTime time.Time        `json:"creationtime"`
	Changes      []ResourceChange `json:"data"`
}

// StreamMessage is one parsed frame from the event stream. Immutable after
// creation.
type StreamMessage struct {
	// ID is the stream message identifier, if the bridge sent an id line.
	ID string

	// Envelopes are the change envelopes in wire order.
	Envelopes []Envelope

	// ReceivedAt is when the frame was parsed.
	ReceivedAt time.Time
}

// Metadata carries provenance copied onto each internal event from its
// owning message and change.
type Metadata struct {
	// OriginMessageID is the stream message the event came from.
	OriginMessageID string

	// ReceivedAt is when the owning message was received.
	ReceivedAt time.Time

	// LegacyID is the v1 API identifier of the resource, if known.
	LegacyID string

	// Owner references the resource that owns the changed service.
	Owner *clip.ResourceIdentifier
}

// Event is the flattened, one-resource-change-per-record representation
// used for all downstream distribution. Immutable after creation.
type Event struct {
	// EventID is the envelope identifier the change arrived in.
	EventID string

	// Kind is the envelope kind (update/add/delete/error).
	Kind Kind

	// ResourceType is the type of the changed resource.
	ResourceType clip.ResourceType

	// ResourceID is the UUID of the changed resource.
	ResourceID string

	// Timestamp is the envelope creation time reported by the bridge.
	Timestamp time.Time

	// Payload is the resource change that produced this event.
	Payload ResourceChange

	// Metadata is provenance copied from the owning message.
	Metadata Metadata
}

// Subscription records a registered handler. Owned by the bus; returned to
// callers as a value they can use to unsubscribe later.
type Subscription struct {
	// ID uniquely identifies the subscription for the bus lifetime.
	ID string

	// Filter is the registered filter, nil when unfiltered.
	Filter *Filter

	// Active reports whether the subscription is registered.
	Active bool
}
