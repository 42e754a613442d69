package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// client is one websocket connection. Only writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the open websocket connections and pushes every vote event to
// all of them. Broadcast never blocks on a client: one whose send buffer is
// full is dropped.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		clients:  make(map[*client]struct{}),
	}
}

// OriginChecker accepts requests whose Origin header is in allowed. "*"
// accepts everything, and requests without an Origin header (non-browser
// clients) are always accepted.
func OriginChecker(allowed []string) func(r *http.Request) bool {
	all := false
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			all = true
		}
		set[strings.ToLower(o)] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if all || origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

// HandleWS upgrades the request and keeps the connection registered until the
// client goes away. Anything the client sends is discarded.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	defer h.remove(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(c)
			return
		}
	}
}

// remove unregisters c and closes its send channel. Safe to call twice.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast queues payload for every client.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Debug("dropping slow websocket client", zap.String("remote", c.conn.RemoteAddr().String()))
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// PublishVoteCast broadcasts directly to this process's clients.
func (h *Hub) PublishVoteCast(ctx context.Context, event domain.VoteCastEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode vote event: %w", err)
	}
	h.Broadcast(b)
	return nil
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
