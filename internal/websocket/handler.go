package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. userID is empty for
// anonymous viewers, who still receive the live view frames.
func ServeWs(hub *Hub, c *websocket.Conn, userID string) {
	client := &Client{
		Hub:    hub,
		Conn:   c,
		ID:     uuid.New(),
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
