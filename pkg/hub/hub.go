// Package hub provides a thread-safe websocket broadcast hub
// using the idiomatic Go channel-based fan-out pattern.
//
// The daemon runs one hub per event stream (fused states, fired alerts);
// presentation clients subscribe and receive JSON events as they happen.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/auralab/go-aura/internal/log"
)

// Event is one JSON-encoded broadcast payload.
type Event struct {
	// Kind names the stream ("state", "alert").
	Kind string `json:"kind"`

	// Data is the encoded payload.
	Data json.RawMessage `json:"data"`
}

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	// Name for logging
	name string

	// Registered clients
	clients map[*Client]bool

	// Inbound events to broadcast
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for client count (read-only access from outside)
	mu sync.RWMutex
}

// New creates a new Hub.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop.
// This should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("hub client connected", "hub", h.name, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("hub client disconnected", "hub", h.name, "clients", count)

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client's buffer is full - drop the slow client
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow hub client", "hub", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent encodes v and broadcasts it under the hub's stream kind.
func (h *Hub) BroadcastEvent(kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Event{Kind: kind, Data: payload})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- data:
	default:
		// Broadcast channel full - drop event
		log.Warn("hub broadcast channel full, dropping event", "hub", h.name)
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
