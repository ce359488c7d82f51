// Package ws pushes section change events to connected CMS editors.
package ws

import (
	"encoding/json"
	"sync"

	"gala/internal/models"
)

// Client represents a single editor WebSocket connection.
type Client struct {
	AdminID uint
	Send    chan []byte
	hub     *Hub
	mu      sync.Mutex
	closed  bool
}

func NewClient(adminID uint) *Client {
	return &Client{AdminID: adminID, Send: make(chan []byte, 256)}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// trySend queues data unless the client is closed or its buffer is full.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// SectionEvent is the message pushed for every section write.
type SectionEvent struct {
	Type    string `json:"type"`
	ID      uint   `json:"id"`
	Section string `json:"section"`
	Version int64  `json:"version"`
}

// Hub maintains the set of active clients and broadcasts to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// PublishSection broadcasts a section event to every editor.
func (h *Hub) PublishSection(event string, s *models.Section) {
	h.BroadcastAll(SectionEvent{Type: event, ID: s.ID, Section: s.Section, Version: s.Version})
}

func (h *Hub) BroadcastAll(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, c := range h.snapshot() {
		c.trySend(data)
	}
}

// CloseAll disconnects every client; used on shutdown.
func (h *Hub) CloseAll() {
	for _, c := range h.snapshot() {
		c.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}
