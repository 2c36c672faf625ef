package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Client is one websocket connection. Writes go through a buffered
// channel so a slow client drops frames instead of stalling the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Msgf("failed to marshal payload: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Stop broadcasts to a dead connection; the read loop's own
			// unregister is a guarded no-op after this.
			c.hub.Unregister(c)
			return
		}
	}
}

// Hub tracks connected clients and fans board snapshots out to all of
// them.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan StatePayload
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan StatePayload, 64),
	}
}

// Run dispatches broadcasts until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(payload)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a snapshot for broadcast, dropping it when the queue
// is full.
func (h *Hub) Publish(payload StatePayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
