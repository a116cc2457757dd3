// internal/notification/hub.go
// Realtime delivery of in-app notifications over websockets.

package notification

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/prempath/prempath-backend/internal/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Configure origin checking in production
		return true
	},
}

type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID string
}

// Event is the wire frame pushed to a connected receiver
type Event struct {
	Type   string      `json:"type"`
	UserID string      `json:"-"`
	Data   interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.userID] = client
			log.Printf("User %s connected for notifications", client.userID)

		case client := <-h.unregister:
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
				log.Printf("User %s disconnected", client.userID)
			}

		case event := <-h.broadcast:
			if client, ok := h.clients[event.UserID]; ok {
				select {
				case client.send <- event:
				default:
					close(client.send)
					delete(h.clients, client.userID)
				}
			}
		}
	}
}

// Push delivers an event to the receiver if connected. Non-blocking
// for callers; an offline receiver just misses the realtime frame and
// picks the notification up from the list endpoint.
func (h *Hub) Push(receiverID string, eventType string, data interface{}) {
	h.broadcast <- Event{
		Type:   eventType,
		UserID: receiverID,
		Data:   data,
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan Event, 256),
		userID: userID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// readPump drains client frames so control messages are processed; the
// hub never acts on inbound payloads.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
