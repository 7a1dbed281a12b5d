package spectate

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinyier/jinyier/internal/models"
)

func dialViewer(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesViewer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	conn := dialViewer(t, hub)
	require.Eventually(t, func() bool { return hub.Viewers() == 1 }, time.Second, 5*time.Millisecond)

	sent := models.GameEvent{
		ID:        "e1",
		Message:   "A wild Frost Drake appears!",
		Category:  models.CategoryCombat,
		Timestamp: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	hub.BroadcastEvent(sent)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.GameEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, sent.Message, got.Message)
	assert.Equal(t, sent.Category, got.Category)
	assert.True(t, sent.Timestamp.Equal(got.Timestamp))
}

func TestViewerDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	conn := dialViewer(t, hub)
	require.Eventually(t, func() bool { return hub.Viewers() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Viewers() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			hub.BroadcastEvent(models.GameEvent{ID: "e", Message: "All is quiet..."})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("BroadcastEvent blocked without a running hub")
	}
}
