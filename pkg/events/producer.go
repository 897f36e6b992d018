package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hueclip/hueclip-go/pkg/log"
	"github.com/hueclip/hueclip-go/pkg/sse"
)

// Transport is the raw frame source the producer consumes. *sse.Client
// satisfies it.
type Transport interface {
	// Connect records the endpoint; no I/O until Listen.
	Connect(endpoint string)

	// Disconnect releases the connection.
	Disconnect()

	// IsConnected reports live connection state.
	IsConnected() bool

	// Listen returns a lazy sequence of complete frames.
	Listen(ctx context.Context) (<-chan sse.Frame, error)

	// Err returns the terminal error after the frame channel closes.
	Err() error
}

var _ Transport = (*sse.Client)(nil)

// Producer is the lifecycle wrapper over the transport. It parses raw
// frames into stream messages.
type Producer struct {
	transport Transport
	endpoint  string
	logger    log.Logger

	mu      sync.Mutex
	running bool
	err     error
}

// NewProducer creates a producer streaming from the given endpoint. An
// empty endpoint defaults to the CLIP v2 event stream path.
func NewProducer(transport Transport, endpoint string, logger log.Logger) *Producer {
	if endpoint == "" {
		endpoint = sse.DefaultEndpoint
	}
	return &Producer{
		transport: transport,
		endpoint:  endpoint,
		logger:    log.OrNoop(logger),
	}
}

// Start connects the transport and marks the producer running. Calling
// Start while running is a no-op with a warning.
func (p *Producer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.logger.Log(log.ErrorEvent(log.LayerStream, "start: producer already running", nil))
		return nil
	}

	p.transport.Connect(p.endpoint)
	p.running = true
	p.err = nil
	p.logger.Log(log.StateEvent(log.StateEntityProducer, "stopped", "running", ""))
	return nil
}

// Stop disconnects the transport and clears the running flag. Safe to call
// when not running.
func (p *Producer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.transport.Disconnect()
	p.running = false
	p.logger.Log(log.StateEvent(log.StateEntityProducer, "running", "stopped", ""))
}

// IsRunning reports whether the producer was started and the transport is
// still connected. The conjunction lets a dropped connection self-report as
// not-running before an explicit Stop.
func (p *Producer) IsRunning() bool {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	return running && p.transport.IsConnected()
}

// Stream consumes the transport's frame sequence and returns parsed stream
// messages. A malformed frame is logged and skipped; the sequence continues.
// Returns ErrNotRunning when called before Start. After the returned
// channel closes, Err reports the transport's terminal error, if any.
func (p *Producer) Stream(ctx context.Context) (<-chan *StreamMessage, error) {
	if !p.IsRunning() {
		return nil, fmt.Errorf("%w: producer must be started before streaming", ErrNotRunning)
	}

	frames, err := p.transport.Listen(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan *StreamMessage)
	go func() {
		defer close(out)

		for frame := range frames {
			msg, perr := ParseFrame(string(frame))
			if perr != nil {
				p.logger.Log(log.ErrorEvent(log.LayerStream, "parse frame", perr))
				continue
			}
			if msg == nil {
				// Keep-alive or comment-only frame; nothing to emit.
				continue
			}

			p.logger.Log(log.Event{
				Timestamp: time.Now(),
				Layer:     log.LayerStream,
				Category:  log.CategoryMessage,
				Message: &log.MessageEvent{
					MessageID: msg.ID,
					Envelopes: len(msg.Envelopes),
				},
			})

			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}

		p.mu.Lock()
		p.err = p.transport.Err()
		p.mu.Unlock()
	}()

	return out, nil
}

// Err returns the terminal stream error recorded after the message channel
// closed, or nil.
func (p *Producer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// ParseFrame parses one raw SSE frame into a stream message. Frames carry
// "id: <token>" and "data: <json array of envelopes>" lines; frames with no
// data line (keep-alives, comments) yield a nil message and no error.
func ParseFrame(raw string) (*StreamMessage, error) {
	var id, data string

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "id:"):
			id = strings.TrimSpace(line[len("id:"):])
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(line[len("data:"):])
		}
	}

	if data == "" {
		return nil, nil
	}

	var envelopes []Envelope
	if err := json.Unmarshal([]byte(data), &envelopes); err != nil {
		return nil, fmt.Errorf("invalid event stream payload: %w", err)
	}

	return &StreamMessage{
		ID:         id,
		Envelopes:  envelopes,
		ReceivedAt: time.Now().UTC(),
	}, nil
}
