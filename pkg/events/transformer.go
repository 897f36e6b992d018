package events

import (
	"fmt"

	"github.com/hueclip/hueclip-go/pkg/log"
)

// Transformer flattens stream messages into internal events.
type Transformer struct {
	logger log.Logger
}

// NewTransformer creates a transformer. Pass a nil logger to disable logging.
func NewTransformer(logger log.Logger) *Transformer {
	return &Transformer{logger: log.OrNoop(logger)}
}

// Transform flattens one stream message into internal events: envelopes in
// order, then changes in order within each envelope, one event per change.
// A malformed change is logged and skipped without affecting its siblings.
// Transform never fails; a nil message or missing envelope list yields an
// empty slice.
func (t *Transformer) Transform(msg *StreamMessage) []*Event {
	if msg == nil || msg.Envelopes == nil {
		t.logger.Log(log.ErrorEvent(log.LayerStream, "transform: message has no envelopes", nil))
		return nil
	}

	events := make([]*Event, 0, len(msg.Envelopes))
	for _, env := range msg.Envelopes {
		for _, change := range env.Changes {
			event, err := newEvent(msg, env, change)
			if err != nil {
				t.logger.Log(log.ErrorEvent(log.LayerStream, "transform: skipping change", err))
				continue
			}
			events = append(events, event)
		}
	}
	return events
}

// newEvent builds one internal event from a change and its owning
// message/envelope. Changes without a resource identity are rejected.
func newEvent(msg *StreamMessage, env Envelope, change ResourceChange) (*Event, error) {
	if change.ID == "" {
		return nil, fmt.Errorf("change in envelope %q has no resource id", env.ID)
	}
	if change.Type == "" {
		return nil, fmt.Errorf("change %q in envelope %q has no resource type", change.ID, env.ID)
	}

	return &Event{
		EventID:      env.ID,
		Kind:         env.Kind,
		ResourceType: change.Type,
		ResourceID:   change.ID,
		Timestamp:    env.CreationTime,
		Payload:      change,
		Metadata: Metadata{
			OriginMessageID: msg.ID,
			ReceivedAt:      msg.ReceivedAt,
			LegacyID:        change.IDV1,
			Owner:           change.Owner,
		},
	}, nil
}
