package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hueclip/hueclip-go/pkg/log"
)

// DefaultStopTimeout bounds how long Stop waits for the dispatch loop to
// drain before force-cancelling it.
const DefaultStopTimeout = 5 * time.Second

// BusConfig configures the event bus.
type BusConfig struct {
	// StopTimeout bounds the graceful drain on Stop (default: 5s).
	StopTimeout time.Duration
}

// subscriber is one registered handler with its filter.
type subscriber struct {
	id      string
	handler Handler
	filter  *Filter
}

// Bus distributes internal events to registered subscribers.
//
// The bus queues published events on an unbounded FIFO so publishers never
// block on dispatch, and fans each event out to every matching handler
// concurrently. The dispatch loop does not advance to the next event until
// all handlers for the current one have completed or failed, which
// preserves publish order across the subscriber population.
type Bus struct {
	logger      log.Logger
	stopTimeout time.Duration

	mu           sync.RWMutex
	subscribers  map[string]*subscriber
	running      bool
	queue        *eventQueue
	cancel       context.CancelFunc
	dispatchDone chan struct{}
}

// NewBus creates a stopped bus. Pass a nil logger to disable logging.
func NewBus(config BusConfig, logger log.Logger) *Bus {
	if config.StopTimeout <= 0 {
		config.StopTimeout = DefaultStopTimeout
	}
	return &Bus{
		logger:      log.OrNoop(logger),
		stopTimeout: config.StopTimeout,
		subscribers: make(map[string]*subscriber),
	}
}

// Start launches the dispatch loop. Returns ErrAlreadyRunning if the bus is
// already running.
func (b *Bus) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return fmt.Errorf("%w: event bus", ErrAlreadyRunning)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.queue = newEventQueue()
	b.cancel = cancel
	b.dispatchDone = make(chan struct{})
	b.running = true

	go b.dispatchLoop(ctx)

	b.logger.Log(log.StateEvent(log.StateEntityBus, "stopped", "running", ""))
	return nil
}

// Stop drains and stops the dispatch loop, then clears all subscriptions.
// It waits up to StopTimeout for queued events to be delivered; past that
// the loop is force-cancelled and in-flight handler invocations are
// abandoned best-effort, with no delivery guarantee for events still
// queued. No-op when not running.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	queue := b.queue
	cancel := b.cancel
	done := b.dispatchDone
	b.mu.Unlock()

	// Sentinel ends the loop after everything queued before it.
	queue.put(nil)

	select {
	case <-done:
	case <-time.After(b.stopTimeout):
		b.logger.Log(log.ErrorEvent(log.LayerService, "bus stop: dispatch loop unresponsive, cancelling", nil))
		cancel()
		<-done
	}
	cancel()
	queue.close()

	b.mu.Lock()
	b.subscribers = make(map[string]*subscriber)
	b.mu.Unlock()

	b.logger.Log(log.StateEvent(log.StateEntityBus, "running", "stopped", ""))
}

// IsRunning reports whether the dispatch loop is active.
func (b *Bus) IsRunning() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.running
}

// Subscribe registers a handler with an optional filter and returns the
// subscription record. Returns ErrNilHandler for a nil handler.
func (b *Bus) Subscribe(handler Handler, filter *Filter) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := &subscriber{
		id:      uuid.NewString(),
		handler: handler,
		filter:  filter,
	}

	b.mu.Lock()
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	return &Subscription{ID: sub.id, Filter: filter, Active: true}, nil
}

// Unsubscribe removes a subscription and reports whether it was present.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[id]; !ok {
		return false
	}
	delete(b.subscribers, id)
	return true
}

// SubscriptionCount returns the number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Publish enqueues an event for dispatch. It never blocks on dispatch.
// Returns ErrNotRunning when the bus is stopped.
func (b *Bus) Publish(event *Event) error {
	if event == nil {
		return fmt.Errorf("event must not be nil")
	}

	b.mu.RLock()
	if !b.running {
		b.mu.RUnlock()
		return fmt.Errorf("%w: cannot publish to a stopped bus", ErrNotRunning)
	}
	queue := b.queue
	b.mu.RUnlock()

	queue.put(event)
	return nil
}

// dispatchLoop delivers queued events one at a time until the sentinel
// arrives or the loop is force-cancelled.
func (b *Bus) dispatchLoop(ctx context.Context) {
	defer close(b.dispatchDone)

	for {
		event, ok := b.queue.get()
		if !ok || event == nil {
			return
		}

		b.dispatchEvent(ctx, event)

		if ctx.Err() != nil {
			return
		}
	}
}

// dispatchEvent invokes all matching handlers concurrently and waits for
// them, unless the loop context is cancelled first.
func (b *Bus) dispatchEvent(ctx context.Context, event *Event) {
	b.mu.RLock()
	matching := make([]*subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.filter.Matches(event) {
			matching = append(matching, sub)
		}
	}
	b.mu.RUnlock()

	if len(matching) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, sub := range matching {
		wg.Add(1)
		go func(sub *subscriber) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Log(log.ErrorEvent(log.LayerService,
						fmt.Sprintf("handler panic in subscription %s", sub.id),
						fmt.Errorf("%v", r)))
				}
			}()

			if err := sub.handler.HandleEvent(ctx, event); err != nil {
				b.logger.Log(log.ErrorEvent(log.LayerService,
					fmt.Sprintf("handler for subscription %s", sub.id), err))
			}
		}(sub)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Force stop: abandon in-flight handlers.
	}
}

// eventQueue is an unbounded FIFO. put never blocks; get blocks until an
// item is available or the queue is closed.
type eventQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []*Event
	closed bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// put appends an item. A nil item is the dispatch sentinel.
func (q *eventQueue) put(event *Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.items = append(q.items, event)
	q.cond.Signal()
}

// get removes and returns the oldest item, blocking while the queue is
// empty. ok is false once the queue is closed and drained.
func (q *eventQueue) get() (event *Event, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}

	event = q.items[0]
	q.items = q.items[1:]
	return event, true
}

// close wakes any blocked get and drops remaining items.
func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.items = nil
	q.cond.Broadcast()
}
