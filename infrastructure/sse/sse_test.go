package sse_test

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/infrastructure/sse"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := sse.WriteEvent(&buf, sse.Event{Type: "dataset:reloaded", ID: "3", Data: map[string]int{"employers": 2}})
	require.NoError(t, err)
	assert.Equal(t, "event: dataset:reloaded\nid: 3\ndata: {\"employers\":2}\n\n", buf.String())
}

func TestBroker_PublishAndCleanup(t *testing.T) {
	t.Parallel()

	b := sse.NewBroker(logger.NewNop(), sse.WithClientBufferSize(1))
	events, cleanup, err := b.Subscribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, b.ClientCount())

	assert.Equal(t, 1, b.Publish(sse.NewDatasetReloadedEvent(2, 5)))
	// buffer is full, second publish is dropped
	assert.Equal(t, 0, b.Publish(sse.NewDatasetReloadedEvent(3, 5)))

	ev := <-events
	assert.Equal(t, sse.EventTypeDatasetReloaded, ev.Type)
	data, ok := ev.Data.(sse.DatasetReloadedData)
	require.True(t, ok)
	assert.Equal(t, uint64(2), data.Version)

	cleanup()
	cleanup()
	_, open := <-events
	assert.False(t, open)
	assert.Equal(t, 0, b.ClientCount())
}

func TestBroker_MaxClientsAndClose(t *testing.T) {
	t.Parallel()

	b := sse.NewBroker(logger.NewNop(), sse.WithMaxClients(1))
	events, _, err := b.Subscribe(context.Background())
	require.NoError(t, err)

	_, _, err = b.Subscribe(context.Background())
	require.ErrorIs(t, err, sse.ErrTooManyClients)

	b.Close()
	_, open := <-events
	assert.False(t, open)

	_, _, err = b.Subscribe(context.Background())
	require.ErrorIs(t, err, sse.ErrClosed)
}

func TestBroker_ContextCancelUnsubscribes(t *testing.T) {
	t.Parallel()

	b := sse.NewBroker(logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	events, _, err := b.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	_, open := <-events
	assert.False(t, open)
	assert.Eventually(t, func() bool { return b.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandler_StreamsEvents(t *testing.T) {
	t.Parallel()

	b := sse.NewBroker(logger.NewNop())
	engine := gin.New()
	engine.GET("/events", sse.Handler(b, logger.NewNop(), time.Minute))
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/events", http.NoBody)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	b.Publish(sse.NewDatasetReloadedEvent(7, 3))

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: ") && line != "event: connected\n" {
			break
		}
	}
	assert.Equal(t, "event: dataset:reloaded\n", line)
}
