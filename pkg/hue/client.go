package hue

import (
	"context"
	"fmt"
	"sync"

	"github.com/hueclip/hueclip-go/pkg/bridge"
	"github.com/hueclip/hueclip-go/pkg/clip"
	"github.com/hueclip/hueclip-go/pkg/events"
	"github.com/hueclip/hueclip-go/pkg/log"
	"github.com/hueclip/hueclip-go/pkg/sse"
	"github.com/hueclip/hueclip-go/pkg/state"
)

// cachedTypes are the resource types the state cache tracks.
var cachedTypes = []clip.ResourceType{
	clip.ResourceTypeLight,
	clip.ResourceTypeGroupedLight,
	clip.ResourceTypeRoom,
	clip.ResourceTypeScene,
}

// Client is the assembled Hue CLIP client.
type Client struct {
	config  *bridge.Config
	rest    *bridge.Client
	service *events.Service
	cache   *state.Manager
	logger  log.Logger

	mu       sync.Mutex
	cacheSub string
}

// CacheSubscriptionID returns the bus subscription id feeding the state
// cache, empty before Start.
func (c *Client) CacheSubscriptionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cacheSub
}

// NewClient builds a client from a validated config. Pass a nil logger to
// disable logging.
func NewClient(config *bridge.Config, logger log.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger = log.OrNoop(logger)

	transport := sse.NewClient(config.BaseURL(), sse.Config{
		ApplicationKey: config.ApplicationKey,
		MaxRetries:     config.MaxRetries,
		RetryDelay:     config.RetryDelay,
	}, logger)

	service := events.NewService(transport, events.ServiceConfig{
		StopTimeout: config.StopTimeout,
	}, logger)

	rest := bridge.NewClient(config.BaseURL(), bridge.ClientConfig{
		ApplicationKey: config.ApplicationKey,
		Timeout:        config.RequestTimeout,
	}, logger)

	return &Client{
		config:  config,
		rest:    rest,
		service: service,
		cache:   state.NewManager(logger),
		logger:  logger,
	}, nil
}

// Start opens the event stream and attaches the state cache to the bus.
func (c *Client) Start() error {
	if err := c.service.Start(); err != nil {
		return err
	}

	// The bus drops subscriptions on Stop, so reattach on every Start.
	sub, err := c.service.Subscribe(c.cache, &events.Filter{ResourceTypes: cachedTypes})
	if err != nil {
		c.service.Stop()
		return fmt.Errorf("attach state cache: %w", err)
	}

	c.mu.Lock()
	c.cacheSub = sub.ID
	c.mu.Unlock()
	return nil
}

// Stop shuts the pipeline down. The cache keeps its contents.
func (c *Client) Stop() {
	c.service.Stop()
}

// IsStreaming reports whether the event pipeline is live.
func (c *Client) IsStreaming() bool {
	return c.service.IsStreaming()
}

// Seed fetches full snapshots of all cached resource types and marks the
// cache initialized. Call after Start so stream deltas racing the fetch
// still land in the cache.
func (c *Client) Seed(ctx context.Context) error {
	lights, err := c.rest.Lights(ctx)
	if err != nil {
		return fmt.Errorf("seed lights: %w", err)
	}
	groups, err := c.rest.GroupedLights(ctx)
	if err != nil {
		return fmt.Errorf("seed grouped lights: %w", err)
	}
	rooms, err := c.rest.Rooms(ctx)
	if err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	scenes, err := c.rest.Scenes(ctx)
	if err != nil {
		return fmt.Errorf("seed scenes: %w", err)
	}

	c.cache.SetLights(lights)
	c.cache.SetGroupedLights(groups)
	c.cache.SetRooms(rooms)
	c.cache.SetScenes(scenes)
	c.cache.MarkInitialized()
	return nil
}

// Subscribe registers a handler for stream events matching the filter.
func (c *Client) Subscribe(handler events.Handler, filter *events.Filter) (*events.Subscription, error) {
	return c.service.Subscribe(handler, filter)
}

// Unsubscribe removes a subscription and reports whether it was present.
func (c *Client) Unsubscribe(id string) bool {
	return c.service.Unsubscribe(id)
}

// State returns the state cache.
func (c *Client) State() *state.Manager {
	return c.cache
}

// Events returns the event service.
func (c *Client) Events() *events.Service {
	return c.service
}

// Rest returns the REST client.
func (c *Client) Rest() *bridge.Client {
	return c.rest
}
