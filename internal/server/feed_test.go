package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/skyforge/skyforge/internal/core/terrain"
)

func TestNewFeedRequiresAddr(t *testing.T) {
	_, err := NewFeed(Config{}, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStopWithoutStart(t *testing.T) {
	f, err := NewFeed(Config{Addr: "127.0.0.1:0"}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, f.Stop(), ErrFeedClosed)
}

func TestStartIsExclusive(t *testing.T) {
	f, err := NewFeed(Config{Addr: "127.0.0.1:0"}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.Start(ctx))
	require.ErrorIs(t, f.Start(ctx), ErrFeedAlreadyRunning)
	require.NoError(t, f.Stop())
}

func TestBroadcastReachesSpectators(t *testing.T) {
	f, err := NewFeed(Config{Addr: "127.0.0.1:0", WriteTimeout: time.Second}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.Start(ctx))
	defer func() { _ = f.Stop() }()

	// Serve the watch handler on an ephemeral test listener.
	ts := httptest.NewServer(http.HandlerFunc(f.handleWatch))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/watch"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return f.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	sent := Snapshot{Frame: 12, Observer: toPosition(terrain.Vec3{X: 1, Y: 2, Z: 3})}
	f.Broadcast(sent)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Equal(t, sent.Frame, got.Frame)
	require.Equal(t, sent.Observer, got.Observer)
}

func TestDisconnectedSpectatorIsDropped(t *testing.T) {
	f, err := NewFeed(Config{Addr: "127.0.0.1:0", WriteTimeout: 100 * time.Millisecond}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.Start(ctx))
	defer func() { _ = f.Stop() }()

	ts := httptest.NewServer(http.HandlerFunc(f.handleWatch))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/watch"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return f.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return f.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}
