package hueclip_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hueclip/hueclip-go/pkg/bridge"
	"github.com/hueclip/hueclip-go/pkg/clip"
	"github.com/hueclip/hueclip-go/pkg/events"
	"github.com/hueclip/hueclip-go/pkg/hue"
)

// fakeBridge is an in-process bridge serving the CLIP REST resources and
// the SSE event stream over TLS with a self-signed certificate, matching
// how real bridges present themselves.
type fakeBridge struct {
	server *httptest.Server
	frames chan string
}

func newFakeBridge(t *testing.T) *fakeBridge {
	t.Helper()

	fb := &fakeBridge{frames: make(chan string, 16)}

	resources := map[string]string{
		"/clip/v2/resource/light":         `[{"id":"light-1","type":"light","on":{"on":true},"dimming":{"brightness":50},"metadata":{"name":"Desk lamp"}}]`,
		"/clip/v2/resource/grouped_light": `[{"id":"group-1","type":"grouped_light","owner":{"rid":"room-1","rtype":"room"},"on":{"on":true}}]`,
		"/clip/v2/resource/room":          `[{"id":"room-1","type":"room","metadata":{"name":"Office"}}]`,
		"/clip/v2/resource/scene":         `[{"id":"scene-1","type":"scene","metadata":{"name":"Relax"}}]`,
	}

	mux := http.NewServeMux()
	for path, data := range resources {
		data := data
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"errors":[],"data":%s}`, data)
		})
	}
	mux.HandleFunc("/eventstream/clip/v2", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("hue-application-key") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		flusher.Flush()
		for {
			select {
			case frame := <-fb.frames:
				fmt.Fprintf(w, "%s\n\n", frame)
				flusher.Flush()
			case <-r.Context().Done():
				return
			}
		}
	})

	fb.server = httptest.NewTLSServer(mux)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBridge) host() string {
	return strings.TrimPrefix(fb.server.URL, "https://")
}

func (fb *fakeBridge) emit(frame string) {
	fb.frames <- frame
}

// eventCollector records delivered events.
type eventCollector struct {
	mu     sync.Mutex
	events []*events.Event
}

func (c *eventCollector) HandleEvent(_ context.Context, event *events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *eventCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestClientEndToEnd(t *testing.T) {
	fb := newFakeBridge(t)

	config := bridge.DefaultConfig()
	config.Host = fb.host()
	config.ApplicationKey = "integration-key"
	config.RetryDelay = 50 * time.Millisecond
	require.NoError(t, config.Validate())

	client, err := hue.NewClient(&config, nil)
	require.NoError(t, err)

	require.NoError(t, client.Start())
	defer client.Stop()

	require.NoError(t, client.Seed(context.Background()))

	cache := client.State()
	require.True(t, cache.IsInitialized())

	light, ok := cache.Light("light-1")
	require.True(t, ok)
	assert.Equal(t, 50.0, light.Dimming.Brightness)
	assert.Equal(t, "Desk lamp", light.Metadata.Name)

	_, ok = cache.Room("room-1")
	assert.True(t, ok)
	_, ok = cache.Scene("scene-1")
	assert.True(t, ok)
	_, ok = cache.GroupedLight("group-1")
	assert.True(t, ok)

	// Subscribe to light events only, then push a brightness update frame.
	lights := &eventCollector{}
	sub, err := client.Subscribe(lights, &events.Filter{
		ResourceTypes: []clip.ResourceType{clip.ResourceTypeLight},
	})
	require.NoError(t, err)

	fb.emit(`id: 1758989560:0` + "\n" +
		`data: [{"id":"env-1","type":"update","creationtime":"2025-09-27T16:12:40Z","data":[` +
		`{"id":"light-1","type":"light","dimming":{"brightness":80}},` +
		`{"id":"scene-1","type":"scene","status":{"active":"static"}}]}]`)

	waitFor(t, func() bool { return lights.count() == 1 })

	// The cache applied both changes; the subscriber saw only lights.
	waitFor(t, func() bool {
		light, ok := cache.Light("light-1")
		return ok && light.Dimming.Brightness == 80
	})
	scene, ok := cache.Scene("scene-1")
	require.True(t, ok)
	require.NotNil(t, scene.Status)
	assert.Equal(t, "static", scene.Status.Active)

	// On fragment was not in the delta and must survive.
	light, _ = cache.Light("light-1")
	assert.True(t, light.On.On)

	// Delete the light and verify it leaves the cache.
	fb.emit(`id: 1758989561:0` + "\n" +
		`data: [{"id":"env-2","type":"delete","creationtime":"2025-09-27T16:12:41Z","data":[` +
		`{"id":"light-1","type":"light"}]}]`)

	waitFor(t, func() bool {
		_, ok := cache.Light("light-1")
		return !ok
	})

	assert.True(t, client.Unsubscribe(sub.ID))
	assert.True(t, client.IsStreaming())

	client.Stop()
	assert.False(t, client.IsStreaming())
}

func TestClientSurvivesStreamReconnect(t *testing.T) {
	fb := newFakeBridge(t)

	config := bridge.DefaultConfig()
	config.Host = fb.host()
	config.ApplicationKey = "integration-key"
	config.RetryDelay = 50 * time.Millisecond

	client, err := hue.NewClient(&config, nil)
	require.NoError(t, err)
	require.NoError(t, client.Start())
	defer client.Stop()

	all := &eventCollector{}
	_, err = client.Subscribe(all, nil)
	require.NoError(t, err)

	fb.emit(`data: [{"id":"env-1","type":"update","data":[{"id":"group-1","type":"grouped_light","on":{"on":false}}]}]`)

	waitFor(t, func() bool { return all.count() == 1 })
	assert.True(t, client.IsStreaming())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
