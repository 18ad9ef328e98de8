// Package preview serves freshly baked sprites over HTTP and pushes a
// reload event to connected viewers whenever a model finishes baking.
package preview

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is pushed to every viewer when a model finishes baking.
type Event struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

const sendBuffer = 16

// client wraps one viewer connection with a buffered outbox.
type client struct {
	ws   *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards whatever the viewer sends and notices disconnects.
func (c *client) readPump(h *Hub) {
	defer h.remove(c)
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub tracks viewer connections and broadcasts bake events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{clients: make(map[*client]struct{}), log: logger}
}

// add registers a fresh connection and starts its write pump.
func (h *Hub) add(ws *websocket.Conn) *client {
	c := &client{ws: ws, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go c.writePump()
	return c
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.ws.Close()
}

// Broadcast sends the event to every viewer. A viewer whose outbox is
// full is dropped rather than allowed to stall the bake.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Printf("preview: encoding event: %v", err)
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Printf("preview: dropping slow viewer")
		h.remove(c)
	}
}

// CloseAll disconnects every viewer.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
