// Package websocket pushes live laundry events to connected admin dashboards.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event types pushed to admin clients
const (
	EventStatusChanged = "STATUS_CHANGED"
	EventCollected     = "COLLECTED"
)

// Event is one live update about a laundry request
type Event struct {
	Type      string `json:"type"`
	ID        uint   `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Hub maintains the set of active admin clients and broadcasts events
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🖥️  Admin client connected (%d active)", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("🖥️  Admin client disconnected (%d active)", h.clientCount())

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead; the write pump cleans up
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for every connected admin client
func (h *Hub) Broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling ws event: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// No listeners draining fast enough; live feed is best effort
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
