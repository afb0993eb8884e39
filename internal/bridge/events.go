package bridge

import (
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// Event types pushed to the page
const (
	EventDownloadComplete = "download-complete"
	EventDownloadFailed   = "download-failed"
)

const eventWriteTimeout = 5 * time.Second

// Event is a host-to-page notification
type Event struct {
	Type  string `json:"type"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// EventSink receives bridge events
type EventSink interface {
	Publish(ev Event)
}

type discardEvents struct{}

func (discardEvents) Publish(Event) {}

// Hub fans events out to every connected page
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Add registers a connection. The hub closes it when a write fails.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

// Remove unregisters and closes a connection
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}

// Count returns the number of connected pages
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish implements EventSink
func (h *Hub) Publish(ev Event) {
	data, err := sonic.Marshal(ev)
	if err != nil {
		log.Printf("[Bridge] Failed to encode event %s: %v", ev.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// CloseAll disconnects every page
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
