package websocket_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/audit"
	"github.com/quizforge/quizforge/internal/domain/uuid"
	ws "github.com/quizforge/quizforge/internal/infrastructure/websocket"
)

func TestNewFeed(t *testing.T) {
	feed := ws.NewFeed()

	assert.NotNil(t, feed)
	assert.False(t, feed.IsRunning())
	assert.Equal(t, 0, feed.ClientCount())
}

func TestFeed_Run_StopsOnContextCancel(t *testing.T) {
	feed := ws.NewFeed()
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	assert.True(t, feed.IsRunning())

	cancel()

	select {
	case <-done:
		assert.False(t, feed.IsRunning())
	case <-time.After(time.Second):
		t.Fatal("feed did not stop in time")
	}
}

// feedServer upgrades incoming connections into feed clients subscribed at
// minSeverity.
func feedServer(t *testing.T, feed *ws.Feed, minSeverity audit.Severity) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := ws.NewClient(feed, conn, uuid.NewUUID(), minSeverity)
		feed.Register(client)
		client.Start()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFeed_DeliversPublishedEvents(t *testing.T) {
	feed := ws.NewFeed()
	go feed.Run(t.Context())

	srv := feedServer(t, feed, audit.SeverityInfo)
	conn := dialFeed(t, srv)

	require.Eventually(t, func() bool {
		return feed.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	event := audit.NewEvent(audit.EventOwnershipViolation, audit.SeverityHigh, map[string]string{
		"resource_id": uuid.NewUUID().String(),
	})
	require.NoError(t, feed.Publish(t.Context(), event))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got audit.Event
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, audit.EventOwnershipViolation, got.Type)
	assert.Equal(t, audit.SeverityHigh, got.Severity)
}

func TestFeed_FiltersBelowMinSeverity(t *testing.T) {
	feed := ws.NewFeed()
	go feed.Run(t.Context())

	srv := feedServer(t, feed, audit.SeverityHigh)
	conn := dialFeed(t, srv)

	require.Eventually(t, func() bool {
		return feed.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	// A MEDIUM event must never reach a client subscribed at HIGH; the
	// CRITICAL event published after it must be the first frame read.
	require.NoError(t, feed.Publish(t.Context(), audit.NewEvent(audit.EventSessionAgentChanged, audit.SeverityMedium, nil)))
	require.NoError(t, feed.Publish(t.Context(), audit.NewEvent(audit.EventSessionHijacked, audit.SeverityCritical, nil)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got audit.Event
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, audit.EventSessionHijacked, got.Type)
}

func TestFeed_UnregisterOnPeerClose(t *testing.T) {
	feed := ws.NewFeed()
	go feed.Run(t.Context())

	srv := feedServer(t, feed, audit.SeverityInfo)
	conn := dialFeed(t, srv)

	require.Eventually(t, func() bool {
		return feed.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return feed.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}
