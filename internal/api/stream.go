package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// streamHub fans placement events out to the websocket subscribers of one
// session. Each subscriber gets a buffered send queue and its own writer
// goroutine; a subscriber that cannot keep up is dropped.
type streamHub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan any
}

func newStreamHub() *streamHub {
	return &streamHub{subs: make(map[*subscriber]struct{})}
}

// broadcast queues the event for every subscriber.
func (h *streamHub) broadcast(event any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.send <- event:
		default:
			// Slow consumer: drop it rather than stall the game.
			delete(h.subs, sub)
			close(sub.send)
		}
	}
}

func (h *streamHub) add(sub *subscriber) {
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
}

func (h *streamHub) remove(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.send)
	}
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is handled by the CORS middleware for the JSON
	// endpoints; the browser client connects from the same origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream upgrades the connection and streams placement events until
// the client goes away. The current state is sent first so a late joiner
// can render immediately.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request, gs *gameSession) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "id", gs.id, "error", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan any, 16)}

	gs.mu.Lock()
	snapshot := gs.stateLocked()
	gs.mu.Unlock()
	sub.send <- snapshot

	gs.hub.add(sub)
	go sub.writer()
	sub.reader(gs)
}

// writer drains the send queue into the connection.
func (sub *subscriber) writer() {
	for event := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := sub.conn.WriteJSON(event); err != nil {
			break
		}
	}
	sub.conn.Close()
}

// reader discards incoming messages; the stream is one-way, and the read
// loop only exists to notice the close.
func (sub *subscriber) reader(gs *gameSession) {
	defer gs.hub.remove(sub)
	sub.conn.SetReadLimit(512)
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
