package hub

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"canvasChat/internal/models/socket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// Client is one live connection: a user id, the websocket, and a bounded
// outbound mailbox drained by WritePump.
type Client struct {
	UserID  uint
	BoardID uint

	hub       *Hub
	conn      *websocket.Conn
	send      chan *socket.Event
	closeOnce sync.Once

	turnMu     sync.Mutex
	turnActive bool
}

func NewClient(h *Hub, conn *websocket.Conn, userID, boardID uint, mailboxSize int) *Client {
	return &Client{
		UserID:  userID,
		BoardID: boardID,
		hub:     h,
		conn:    conn,
		send:    make(chan *socket.Event, mailboxSize),
	}
}

// SendEvent marshals data and enqueues it on the mailbox. Never blocks and
// never faults: a full or closed mailbox drops the frame with a log line.
func (c *Client) SendEvent(eventType string, data any) {
	event, err := socket.NewEvent(eventType, data)
	if err != nil {
		log.Printf("Error marshalling %v for user %v: %v", eventType, c.UserID, err)
		return
	}
	c.enqueue(event)
}

func (c *Client) enqueue(event *socket.Event) {
	// Sending into a mailbox that a concurrent unregister just closed panics;
	// that race is expected during disconnect, so catch it and drop the frame.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Dropped %v for user %v: mailbox closed", event.Type, c.UserID)
		}
	}()

	select {
	case c.send <- event:
	default:
		log.Printf("Dropped %v for user %v: mailbox full", event.Type, c.UserID)
	}
}

func (c *Client) closeMailbox() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) closeConn() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		log.Printf("Error closing connection for user %v: %v", c.UserID, err)
	}
}

// BeginTurn reserves the connection's single turn slot. Returns false if a
// turn is already in flight.
func (c *Client) BeginTurn() bool {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()
	if c.turnActive {
		return false
	}
	c.turnActive = true
	return true
}

func (c *Client) EndTurn() {
	c.turnMu.Lock()
	c.turnActive = false
	c.turnMu.Unlock()
}

// WritePump drains the mailbox to the transport and keeps the connection
// alive with pings. One per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConn()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("Error writing json for user %v: %v", c.UserID, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump decodes inbound frames and hands them to onEvent. When the read
// loop ends, for any reason, the client is unregistered and the transport
// closed, so no writer is ever leaked.
func (c *Client) ReadPump(onEvent func(*Client, *socket.Event)) {
	defer func() {
		c.hub.Unregister(c)
		c.closeConn()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var event socket.Event
		if err := c.conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error reading json for user %v: %v", c.UserID, err)
			}
			break
		}
		onEvent(c, &event)
	}
}
