package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes client events to an slog.Logger.
// Useful for development when you want to see stream events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Errors are logged at Warn level,
// everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.StreamID != "" {
		attrs = append(attrs, slog.String("stream_id", event.StreamID))
	}
	if event.BridgeID != "" {
		attrs = append(attrs, slog.String("bridge_id", event.BridgeID))
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote_addr", event.RemoteAddr))
	}

	level := slog.LevelDebug

	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
	case event.Message != nil:
		if event.Message.MessageID != "" {
			attrs = append(attrs, slog.String("msg_id", event.Message.MessageID))
		}
		if event.Message.Envelopes > 0 {
			attrs = append(attrs, slog.Int("envelopes", event.Message.Envelopes))
		}
		if event.Message.Events > 0 {
			attrs = append(attrs, slog.Int("events", event.Message.Events))
		}
		if event.Message.SubscriptionID != "" {
			attrs = append(attrs, slog.String("subscription_id", event.Message.SubscriptionID))
		}
		if event.Message.ResourceType != "" {
			attrs = append(attrs,
				slog.String("resource_type", event.Message.ResourceType),
				slog.String("resource_id", event.Message.ResourceID),
			)
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "hueclip", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
