package hub

import (
	"log"

	"canvasChat/internal/models/socket"
)

// Hub owns the live connection set. The map is mutated only inside Run, fed
// by the register/unregister/broadcast channels; reader and writer pumps
// never touch it directly. Delivery is best-effort: a slow or dead client
// loses frames, it never stalls the loop.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *socket.Event
	stop       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *socket.Event, 64),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
			}
			// Closing is latched inside the client, so an unregister for an
			// already-removed client stays a no-op.
			client.closeMailbox()
		case event := <-h.broadcast:
			for client := range h.clients {
				client.enqueue(event)
			}
		case <-h.stop:
			for client := range h.clients {
				client.closeMailbox()
				client.closeConn()
				delete(h.clients, client)
			}
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister hands the client to the control loop. After Stop the loop is
// gone and every mailbox is already closed, so a late pump exit returns
// immediately instead of blocking on the channel.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

func (h *Hub) BroadcastAll(event *socket.Event) {
	h.broadcast <- event
}

// BroadcastEvent marshals data into the wire envelope and fans it out to
// every live connection.
func (h *Hub) BroadcastEvent(eventType string, data any) {
	event, err := socket.NewEvent(eventType, data)
	if err != nil {
		log.Printf("Error marshalling broadcast %v: %v", eventType, err)
		return
	}
	h.BroadcastAll(event)
}

func (h *Hub) Stop() {
	close(h.stop)
}
