package bridge

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hueclip/hueclip-go/pkg/clip"
	"github.com/hueclip/hueclip-go/pkg/log"
)

// Client errors.
var (
	// ErrBridgeError indicates the bridge returned a CLIP error envelope.
	ErrBridgeError = errors.New("bridge returned error")

	// ErrUnexpectedStatus indicates a non-200 HTTP response.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// ClientConfig configures the REST client.
type ClientConfig struct {
	// ApplicationKey authenticates requests (hue-application-key header).
	ApplicationKey string

	// Timeout bounds each request (default: 10s).
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests. When nil a
	// TLS-permissive client is used; bridges serve self-signed certs.
	HTTPClient *http.Client
}

// Client is the read-only CLIP v2 REST client.
type Client struct {
	baseURL    string
	config     ClientConfig
	httpClient *http.Client
	logger     log.Logger
}

// NewClient creates a REST client for the bridge at baseURL
// (e.g. "https://192.168.1.10"). Pass a nil logger to disable logging.
func NewClient(baseURL string, config ClientConfig, logger log.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
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
	}
}

// apiResponse is the CLIP v2 response envelope.
type apiResponse struct {
	Errors []apiError      `json:"errors"`
	Data   json.RawMessage `json:"data"`
}

// apiError is one entry of the CLIP v2 error list.
type apiError struct {
	Description string `json:"description"`
}

// Lights fetches all light resources.
func (c *Client) Lights(ctx context.Context) ([]clip.Light, error) {
	var lights []clip.Light
	if err := c.get(ctx, "/clip/v2/resource/light", &lights); err != nil {
		return nil, err
	}
	return lights, nil
}

// GroupedLights fetches all grouped light resources.
func (c *Client) GroupedLights(ctx context.Context) ([]clip.GroupedLight, error) {
	var groups []clip.GroupedLight
	if err := c.get(ctx, "/clip/v2/resource/grouped_light", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Rooms fetches all room resources.
func (c *Client) Rooms(ctx context.Context) ([]clip.Room, error) {
	var rooms []clip.Room
	if err := c.get(ctx, "/clip/v2/resource/room", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Scenes fetches all scene resources.
func (c *Client) Scenes(ctx context.Context) ([]clip.Scene, error) {
	var scenes []clip.Scene
	if err := c.get(ctx, "/clip/v2/resource/scene", &scenes); err != nil {
		return nil, err
	}
	return scenes, nil
}

// get performs one GET against the CLIP API and decodes the data list of
// the response envelope into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.ApplicationKey != "" {
		req.Header.Set("hue-application-key", c.config.ApplicationKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Log(log.ErrorEvent(log.LayerCache, fmt.Sprintf("fetch %s", path), err))
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, path)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrBridgeError, envelope.Errors[0].Description)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode resources for %s: %w", path, err)
	}
	return nil
}
