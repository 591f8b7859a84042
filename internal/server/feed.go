package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/pkg/concurrent"
	"github.com/skyforge/skyforge/pkg/sequence"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Config holds the spectator feed settings.
type Config struct {
	Addr         string
	WriteTimeout time.Duration
}

// Feed broadcasts engine snapshots to connected spectator clients over
// websocket. It is presentation plumbing only: it never touches engine state,
// it just fans out bytes the frame loop hands it.
type Feed struct {
	cfg Config
	log log.Log

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	srv     *http.Server
	running bool
}

func NewFeed(cfg Config, logger log.Log) (*Feed, error) {
	if cfg.Addr == "" {
		return nil, ErrInvalidConfig
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Feed{
		cfg:     cfg,
		log:     logger,
		clients: make(map[*websocket.Conn]struct{}),
	}, nil
}

// Start begins accepting spectator connections on /watch. It returns once the
// listener goroutine is launched.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return ErrFeedAlreadyRunning
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", f.handleWatch)
	f.srv = &http.Server{Addr: f.cfg.Addr, Handler: mux}
	f.running = true
	f.mu.Unlock()

	go func() {
		if err := f.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			f.log.Error("feed listener failed", log.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		_ = f.Stop()
	}()

	f.log.Info("spectator feed listening", log.String("addr", f.cfg.Addr))
	return nil
}

// Stop closes the listener and every client connection.
func (f *Feed) Stop() error {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return ErrFeedClosed
	}
	f.running = false
	srv := f.srv
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for c := range f.clients {
		conns = append(conns, c)
	}
	f.clients = make(map[*websocket.Conn]struct{})
	f.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Broadcast encodes the snapshot once and writes it to every client in
// parallel. Clients whose write fails are dropped.
func (f *Feed) Broadcast(snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		f.log.Error("snapshot encode failed", log.Error(err))
		return
	}

	f.mu.Lock()
	conns := make(map[*websocket.Conn]struct{}, len(f.clients))
	for c := range f.clients {
		conns[c] = struct{}{}
	}
	f.mu.Unlock()
	if len(conns) == 0 {
		return
	}

	_ = concurrent.Concurrent(sequence.FromMapKeys(conns), func(c *websocket.Conn) error {
		_ = c.SetWriteDeadline(time.Now().Add(f.cfg.WriteTimeout))
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			f.drop(c)
		}
		return nil
	})
}

// ClientCount returns the number of connected spectators.
func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("spectator upgrade failed", log.Error(err))
		return
	}

	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		_ = conn.Close()
		return
	}
	f.clients[conn] = struct{}{}
	f.mu.Unlock()
	f.log.Info("spectator connected", log.String("remote", conn.RemoteAddr().String()))

	// Spectators never send anything meaningful; the read loop only notices
	// disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.drop(conn)
				return
			}
		}
	}()
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	_, known := f.clients[conn]
	delete(f.clients, conn)
	f.mu.Unlock()
	_ = conn.Close()
	if known {
		f.log.Info("spectator disconnected", log.String("remote", conn.RemoteAddr().String()))
	}
}
