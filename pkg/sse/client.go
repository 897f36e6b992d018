package sse

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hueclip/hueclip-go/pkg/log"
)

// Transport defaults.
const (
	// DefaultEndpoint is the CLIP v2 event stream endpoint.
	DefaultEndpoint = "/eventstream/clip/v2"

	// DefaultMaxRetries is the number of consecutive connection failures
	// tolerated before Listen gives up.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed delay between connection attempts.
	DefaultRetryDelay = 2 * time.Second

	// ApplicationKeyHeader carries the Hue application key.
	ApplicationKeyHeader = "hue-application-key"
)

// Transport errors.
var (
	// ErrConnectionFailed indicates the retry budget was exhausted.
	ErrConnectionFailed = errors.New("event stream connection failed")

	// ErrNotConnected indicates Listen was called before Connect.
	ErrNotConnected = errors.New("not connected to event stream")
)

// Config configures the stream transport.
type Config struct {
	// ApplicationKey is the Hue application key sent with each request.
	ApplicationKey string

	// MaxRetries is the number of consecutive failures tolerated before
	// Listen terminates with ErrConnectionFailed (default: 3).
	MaxRetries int

	// RetryDelay is the fixed delay between connection attempts
	// (default: 2s).
	RetryDelay time.Duration

	// HTTPClient overrides the HTTP client. When nil, a client that skips
	// certificate verification is used; the bridge presents a self-signed
	// certificate chain.
	HTTPClient *http.Client
}

// Client is the SSE transport for the bridge event stream.
// It owns the network connection and the reconnect loop.
type Client struct {
	baseURL    string
	config     Config
	httpClient *http.Client
	logger     log.Logger
	streamID   string

	mu       sync.Mutex
	state    State
	endpoint string
	err      error
	cancel   context.CancelFunc
}

// NewClient creates a transport for the bridge at baseURL
// (e.g. "https://192.168.1.100"). Pass a nil logger to disable logging.
func NewClient(baseURL string, config Config, logger log.Logger) *Client {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		config:     config,
		httpClient: httpClient,
		logger:     log.OrNoop(logger),
		streamID:   uuid.NewString(),
	}
}

// StreamID returns the stream session identifier used for log correlation.
func (c *Client) StreamID() string {
	return c.streamID
}

// Connect records the endpoint to stream from. It performs no I/O; the
// first request happens when Listen is called. Calling Connect while
// already connected is a no-op.
func (c *Client) Connect(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDisconnected {
		c.logger.Log(c.stamp(log.ErrorEvent(log.LayerTransport, "connect: already connected", nil)))
		return
	}

	c.endpoint = endpoint
	c.err = nil
	c.setStateLocked(StateConnected, "connect")
}

// Disconnect releases the connection and stops any active Listen loop.
// Safe to call when not connected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisconnected {
		return
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.endpoint = ""
	c.setStateLocked(StateDisconnected, "disconnect")
}

// IsConnected reports live connection state only, not retry status.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != StateDisconnected
}

// State returns the current transport state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the terminal error that ended the last Listen sequence, or
// nil if it ended cleanly (context cancelled or Disconnect).
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Listen starts streaming and returns a lazy sequence of complete frames.
// The channel stays open across reconnect attempts and closes when the
// retry budget is exhausted (Err then returns ErrConnectionFailed), the
// context is cancelled, or Disconnect is called.
func (c *Client) Listen(ctx context.Context) (<-chan Frame, error) {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}

	lctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.err = nil
	url := c.baseURL + c.endpoint
	c.mu.Unlock()

	out := make(chan Frame)
	go c.listenLoop(lctx, url, out)
	return out, nil
}

// listenLoop runs connection attempts until cancelled or the retry budget
// is exhausted.
func (c *Client) listenLoop(ctx context.Context, url string, out chan<- Frame) {
	defer close(out)

	retries := 0
	for {
		if ctx.Err() != nil {
			return
		}

		c.setState(StateListening, "stream attempt")
		streamed, err := c.streamOnce(ctx, url, out)
		if ctx.Err() != nil {
			return
		}
		if streamed {
			retries = 0
		}
		if err == nil {
			// Clean end of stream; reconnect immediately.
			continue
		}

		c.logger.Log(c.stamp(log.ErrorEvent(log.LayerTransport, "stream attempt failed", err)))
		retries++
		if retries >= c.config.MaxRetries {
			c.fail(fmt.Errorf("%w after %d attempts: %v", ErrConnectionFailed, retries, err))
			return
		}

		c.setState(StateReconnecting, "retrying")
		select {
		case <-time.After(c.config.RetryDelay):
		case <-ctx.Done():
			return
		}
	}
}

// streamOnce performs one stream request and emits frames until the
// response body ends. streamed reports whether a stream was established
// (HTTP 200 received); err is nil on clean end of stream.
func (c *Client) streamOnce(ctx context.Context, url string, out chan<- Frame) (streamed bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.config.ApplicationKey != "" {
		req.Header.Set(ApplicationKeyHeader, c.config.ApplicationKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("event stream request returned status %d", resp.StatusCode)
	}

	fs := newFrameScanner(resp.Body)
	for {
		frame, ok, serr := fs.next()
		if !ok {
			return true, serr
		}

		c.logFrame(frame)
		select {
		case out <- frame:
		case <-ctx.Done():
			return true, nil
		}
	}
}

// fail records the terminal error and drops the connection so that
// IsConnected reflects the dead stream.
func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	c.setStateLocked(StateDisconnected, "retry budget exhausted")
}

func (c *Client) setState(s State, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setStateLocked(s, reason)
}

// setStateLocked transitions state and logs it. Caller holds c.mu.
func (c *Client) setStateLocked(s State, reason string) {
	if c.state == s {
		return
	}
	old := c.state
	c.state = s
	c.logger.Log(c.stamp(log.StateEvent(log.StateEntityConnection, old.String(), s.String(), reason)))
}

func (c *Client) logFrame(frame Frame) {
	data := []byte(frame)
	truncated := false
	if len(data) > MaxLogFrameDataSize {
		data = data[:MaxLogFrameDataSize]
		truncated = true
	}

	c.logger.Log(c.stamp(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerTransport,
		Category:  log.CategoryFrame,
		Frame: &log.FrameEvent{
			Size:      len(frame),
			Data:      data,
			Truncated: truncated,
		},
	}))
}

// stamp attaches stream correlation fields to a log event.
func (c *Client) stamp(e log.Event) log.Event {
	e.StreamID = c.streamID
	e.RemoteAddr = c.baseURL
	return e
}
