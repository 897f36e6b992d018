package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hueclip/hueclip-go/pkg/log"
)

// ServiceConfig configures the event service.
type ServiceConfig struct {
	// Endpoint is the event stream path on the bridge (default:
	// /eventstream/clip/v2).
	Endpoint string

	// StopTimeout bounds the graceful shutdown of the process loop and the
	// bus drain (default: 5s).
	StopTimeout time.Duration
}

// Service is the top-level orchestrator of the event pipeline. It owns the
// producer, transformer and bus, and runs the loop that moves stream
// messages from the producer through the transformer onto the bus.
type Service struct {
	producer    *Producer
	transformer *Transformer
	bus         *Bus
	logger      log.Logger
	stopTimeout time.Duration

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	loopDone chan struct{}
}

// NewService assembles the pipeline on top of the given transport. Pass a
// nil logger to disable logging.
func NewService(transport Transport, config ServiceConfig, logger log.Logger) *Service {
	if config.StopTimeout <= 0 {
		config.StopTimeout = DefaultStopTimeout
	}
	logger = log.OrNoop(logger)
	return &Service{
		producer:    NewProducer(transport, config.Endpoint, logger),
		transformer: NewTransformer(logger),
		bus:         NewBus(BusConfig{StopTimeout: config.StopTimeout}, logger),
		logger:      logger,
		stopTimeout: config.StopTimeout,
	}
}

// Start brings up the producer and bus and launches the process loop.
// Calling Start while streaming is a no-op with a warning. When a previous
// run's stream has died, Start tears down its remains first, so every Start
// on a non-streaming service is a fresh attempt.
func (s *Service) Start() error {
	if s.IsStreaming() {
		s.logger.Log(log.ErrorEvent(log.LayerService, "start: event service already streaming", nil))
		return nil
	}
	if s.teardown() {
		s.logger.Log(log.ErrorEvent(log.LayerService, "start: cleared dead event pipeline", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.producer.Start(); err != nil {
		return fmt.Errorf("start producer: %w", err)
	}
	if err := s.bus.Start(); err != nil {
		s.producer.Stop()
		return fmt.Errorf("start event bus: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := s.producer.Stream(ctx)
	if err != nil {
		cancel()
		s.bus.Stop()
		s.producer.Stop()
		return fmt.Errorf("open event stream: %w", err)
	}

	s.cancel = cancel
	s.loopDone = make(chan struct{})
	s.running = true

	go s.processLoop(ctx, messages)

	s.logger.Log(log.StateEvent(log.StateEntityService, "stopped", "streaming", ""))
	return nil
}

// Stop shuts the pipeline down: the process loop is cancelled and awaited
// (bounded), then the producer disconnects and the bus drains. Safe to call
// when not running, and safe to call twice.
func (s *Service) Stop() {
	if !s.teardown() {
		s.logger.Log(log.ErrorEvent(log.LayerService, "stop: event service not running", nil))
		return
	}
	s.logger.Log(log.StateEvent(log.StateEntityService, "streaming", "stopped", ""))
}

// teardown stops whatever remains of the pipeline, live or dead, and
// reports whether there was anything to stop.
func (s *Service) teardown() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.running = false
	cancel := s.cancel
	done := s.loopDone
	s.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(s.stopTimeout):
		s.logger.Log(log.ErrorEvent(log.LayerService, "stop: process loop did not exit in time", nil))
	}

	s.producer.Stop()
	s.bus.Stop()
	return true
}

// IsStreaming reports whether the process loop is alive and the producer
// still holds a connection.
func (s *Service) IsStreaming() bool {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	return running && s.producer.IsRunning()
}

// Subscribe registers a handler for events matching the filter. A nil
// filter receives every event.
func (s *Service) Subscribe(handler Handler, filter *Filter) (*Subscription, error) {
	return s.bus.Subscribe(handler, filter)
}

// Unsubscribe removes a subscription and reports whether it was present.
func (s *Service) Unsubscribe(id string) bool {
	return s.bus.Unsubscribe(id)
}

// Bus exposes the underlying bus, mainly so callers can publish synthetic
// events in tests or wire additional producers.
func (s *Service) Bus() *Bus {
	return s.bus
}

// processLoop moves messages from the producer through the transformer onto
// the bus until the stream closes or the loop is cancelled.
func (s *Service) processLoop(ctx context.Context, messages <-chan *StreamMessage) {
	defer close(s.loopDone)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				// Stream ended on its own; the transport is disconnected so
				// IsStreaming turns false, but Stop still owns the teardown.
				if err := s.producer.Err(); err != nil {
					s.logger.Log(log.ErrorEvent(log.LayerService, "event stream closed", err))
				}
				return
			}

			evts := s.transformer.Transform(msg)
			for _, event := range evts {
				if err := s.bus.Publish(event); err != nil {
					s.logger.Log(log.ErrorEvent(log.LayerService, "publish event", err))
				}
			}
			if len(evts) > 0 {
				s.logger.Log(log.Event{
					Timestamp: time.Now(),
					Layer:     log.LayerService,
					Category:  log.CategoryMessage,
					Message: &log.MessageEvent{
						MessageID: msg.ID,
						Envelopes: len(msg.Envelopes),
						Events:    len(evts),
					},
				})
			}
		}
	}
}
