package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Hub tracks connected clients and serializes their inbound messages onto
// a single goroutine. Handlers run on that goroutine and must not block.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client goes away, before its Send
	// channel is closed.
	OnDisconnect func(client *Client)

	clients map[*Client]struct{}
	nextID  atomic.Uint64
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
		clients:    make(map[*Client]struct{}),
	}
}

// NextClientID returns a process-unique client ID.
func (h *Hub) NextClientID() string {
	return fmt.Sprintf("client-%d", h.nextID.Add(1))
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID)

		case client := <-h.Unregister:
			h.disconnect(client)

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}

		case <-ctx.Done():
			h.mu.RLock()
			remaining := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				remaining = append(remaining, c)
			}
			h.mu.RUnlock()

			for _, c := range remaining {
				h.disconnect(c)
			}
			slog.Info("hub stopped", "clients", len(remaining))
			return
		}
	}
}

// disconnect forgets a client once. Sessions drop it before Send closes.
func (h *Hub) disconnect(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if !ok {
		return
	}

	slog.Info("client disconnected", "client", client.ID)
	if h.OnDisconnect != nil {
		h.OnDisconnect(client)
	}
	close(client.Send)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
