package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameEvent(streamID string, size int) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		StreamID:  streamID,
		Layer:     LayerTransport,
		Category:  CategoryFrame,
		Frame:     &FrameEvent{Size: size, Data: []byte("data: x")},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	event := Event{
		Timestamp:  time.Date(2025, 9, 27, 16, 12, 40, 123456789, time.UTC),
		StreamID:   "stream-1",
		BridgeID:   "ecb5fa1234567890",
		Layer:      LayerStream,
		Category:   CategoryMessage,
		RemoteAddr: "https://192.168.1.10",
		Message: &MessageEvent{
			MessageID: "1758989560:0",
			Envelopes: 2,
			Events:    3,
		},
	}

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.True(t, got.Timestamp.Equal(event.Timestamp))
	assert.Equal(t, event.StreamID, got.StreamID)
	assert.Equal(t, event.BridgeID, got.BridgeID)
	assert.Equal(t, event.Layer, got.Layer)
	assert.Equal(t, event.Category, got.Category)
	require.NotNil(t, got.Message)
	assert.Equal(t, "1758989560:0", got.Message.MessageID)
	assert.Equal(t, 2, got.Message.Envelopes)
	assert.Equal(t, 3, got.Message.Events)
}

func TestEncodeDecodeErrorEvent(t *testing.T) {
	event := ErrorEvent(LayerTransport, "stream attempt", io.ErrUnexpectedEOF)

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)

	require.NotNil(t, got.Error)
	assert.Equal(t, LayerTransport, got.Error.Layer)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), got.Error.Message)
	assert.Equal(t, "stream attempt", got.Error.Context)
	assert.Equal(t, CategoryError, got.Category)
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.cborlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Log(frameEvent("stream-1", 10))
	logger.Log(frameEvent("stream-2", 20))
	logger.Log(StateEvent(StateEntityConnection, "DISCONNECTED", "CONNECTED", "connect"))
	require.NoError(t, logger.Close())

	// Close twice is safe; Log after Close is ignored.
	require.NoError(t, logger.Close())
	logger.Log(frameEvent("stream-3", 30))

	reader, err := NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var count int
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.cborlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	logger.Log(frameEvent("stream-1", 10))
	logger.Log(frameEvent("stream-2", 20))
	logger.Log(ErrorEvent(LayerService, "publish", io.ErrClosedPipe))
	require.NoError(t, logger.Close())

	t.Run("ByStreamID", func(t *testing.T) {
		reader, err := NewFilteredReader(path, Filter{StreamID: "stream-2"})
		require.NoError(t, err)
		defer reader.Close()

		event, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, "stream-2", event.StreamID)

		_, err = reader.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("ByCategory", func(t *testing.T) {
		category := CategoryError
		reader, err := NewFilteredReader(path, Filter{Category: &category})
		require.NoError(t, err)
		defer reader.Close()

		event, err := reader.Next()
		require.NoError(t, err)
		require.NotNil(t, event.Error)
		assert.Equal(t, "publish", event.Error.Context)
	})

	t.Run("ByLayer", func(t *testing.T) {
		layer := LayerTransport
		reader, err := NewFilteredReader(path, Filter{Layer: &layer})
		require.NoError(t, err)
		defer reader.Close()

		var count int
		for {
			_, err := reader.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			count++
		}
		assert.Equal(t, 2, count)
	})
}

type countingLogger struct{ events []Event }

func (c *countingLogger) Log(event Event) { c.events = append(c.events, event) }

func TestMultiLogger(t *testing.T) {
	first := &countingLogger{}
	second := &countingLogger{}

	multi := NewMultiLogger(first, second)
	multi.Log(frameEvent("stream-1", 10))

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestOrNoop(t *testing.T) {
	assert.IsType(t, NoopLogger{}, OrNoop(nil))

	l := &countingLogger{}
	assert.Equal(t, Logger(l), OrNoop(l))

	// NoopLogger tolerates any event.
	OrNoop(nil).Log(Event{})
}

func TestLayerAndCategoryStrings(t *testing.T) {
	assert.Equal(t, "TRANSPORT", LayerTransport.String())
	assert.Equal(t, "STREAM", LayerStream.String())
	assert.Equal(t, "SERVICE", LayerService.String())
	assert.Equal(t, "CACHE", LayerCache.String())
	assert.Equal(t, "UNKNOWN", Layer(99).String())

	assert.Equal(t, "FRAME", CategoryFrame.String())
	assert.Equal(t, "MESSAGE", CategoryMessage.String())
	assert.Equal(t, "STATE", CategoryState.String())
	assert.Equal(t, "ERROR", CategoryError.String())
	assert.Equal(t, "UNKNOWN", Category(99).String())

	assert.Equal(t, "CONNECTION", StateEntityConnection.String())
	assert.Equal(t, "CACHE", StateEntityCache.String())
	assert.Equal(t, "UNKNOWN", StateEntity(99).String())
}
