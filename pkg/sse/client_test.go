package sse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseHandler writes the given frames and keeps the stream open until the
// request context is done.
func sseHandler(frames []string, hold bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frame := range frames {
			fmt.Fprintf(w, "%s\n\n", frame)
			flusher.Flush()
		}
		if hold {
			<-r.Context().Done()
		}
	}
}

func TestClientConnect(t *testing.T) {
	client := NewClient("https://bridge.local", Config{}, nil)

	assert.False(t, client.IsConnected())
	assert.Equal(t, StateDisconnected, client.State())

	client.Connect(DefaultEndpoint)
	assert.True(t, client.IsConnected())
	assert.Equal(t, StateConnected, client.State())

	// Second Connect is a no-op.
	client.Connect("/other")
	assert.Equal(t, StateConnected, client.State())

	client.Disconnect()
	assert.False(t, client.IsConnected())

	// Disconnect when already disconnected is safe.
	client.Disconnect()
	assert.False(t, client.IsConnected())
}

func TestClientListenRequiresConnect(t *testing.T) {
	client := NewClient("https://bridge.local", Config{}, nil)

	_, err := client.Listen(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestClientListenReceivesFrames(t *testing.T) {
	server := httptest.NewServer(sseHandler([]string{
		"id: 1\ndata: [{\"type\":\"update\"}]",
		"id: 2\ndata: [{\"type\":\"add\"}]",
	}, true))
	defer server.Close()

	client := NewClient(server.URL, Config{ApplicationKey: "key"}, nil)
	client.Connect(DefaultEndpoint)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames, err := client.Listen(ctx)
	require.NoError(t, err)

	first := <-frames
	assert.Equal(t, Frame("id: 1\ndata: [{\"type\":\"update\"}]"), first)

	second := <-frames
	assert.Equal(t, Frame("id: 2\ndata: [{\"type\":\"add\"}]"), second)

	cancel()
	for range frames {
	}
	assert.NoError(t, client.Err())
}

func TestClientSendsApplicationKey(t *testing.T) {
	var gotKey atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get(ApplicationKeyHeader))
		sseHandler([]string{"data: x"}, false)(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, Config{ApplicationKey: "secret", MaxRetries: 1}, nil)
	client.Connect(DefaultEndpoint)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames, err := client.Listen(ctx)
	require.NoError(t, err)
	<-frames
	cancel()
	for range frames {
	}

	assert.Equal(t, "secret", gotKey.Load())
}

func TestClientRetryBudgetExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, Config{
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	}, nil)
	client.Connect(DefaultEndpoint)

	frames, err := client.Listen(context.Background())
	require.NoError(t, err)

	// No frames; the channel closes once the budget is spent.
	for range frames {
		t.Fatal("received frame from failing server")
	}

	assert.ErrorIs(t, client.Err(), ErrConnectionFailed)
	assert.False(t, client.IsConnected())
}

func TestClientReconnectsAfterCleanEOF(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		// First stream ends cleanly after one frame; second stays open.
		sseHandler([]string{fmt.Sprintf("id: %d\ndata: x", n)}, n > 1)(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, Config{
		MaxRetries: 1,
		RetryDelay: 10 * time.Millisecond,
	}, nil)
	client.Connect(DefaultEndpoint)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames, err := client.Listen(ctx)
	require.NoError(t, err)

	first := <-frames
	assert.Equal(t, Frame("id: 1\ndata: x"), first)

	// A clean end of stream must not consume the retry budget.
	second := <-frames
	assert.Equal(t, Frame("id: 2\ndata: x"), second)

	cancel()
	for range frames {
	}
	assert.NoError(t, client.Err())
	assert.GreaterOrEqual(t, requests.Load(), int32(2))
}

func TestClientDisconnectStopsListen(t *testing.T) {
	server := httptest.NewServer(sseHandler([]string{"data: x"}, true))
	defer server.Close()

	client := NewClient(server.URL, Config{}, nil)
	client.Connect(DefaultEndpoint)

	frames, err := client.Listen(context.Background())
	require.NoError(t, err)
	<-frames

	client.Disconnect()

	select {
	case _, open := <-frames:
		if open {
			// Drain anything in flight; the channel must close.
			for range frames {
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("frame channel did not close after Disconnect")
	}

	assert.False(t, client.IsConnected())
	assert.NoError(t, client.Err())
}

func TestClientDefaults(t *testing.T) {
	client := NewClient("https://bridge.local/", Config{}, nil)

	assert.Equal(t, DefaultMaxRetries, client.config.MaxRetries)
	assert.Equal(t, DefaultRetryDelay, client.config.RetryDelay)
	assert.Equal(t, "https://bridge.local", client.baseURL)
	assert.NotEmpty(t, client.StreamID())
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "DISCONNECTED"},
		{StateConnected, "CONNECTED"},
		{StateListening, "LISTENING"},
		{StateReconnecting, "RECONNECTING"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestClientErrWrapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, Config{MaxRetries: 1, RetryDelay: time.Millisecond}, nil)
	client.Connect(DefaultEndpoint)

	frames, err := client.Listen(context.Background())
	require.NoError(t, err)
	for range frames {
	}

	err = client.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionFailed))
	assert.Contains(t, err.Error(), "401")
}
