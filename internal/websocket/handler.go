package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection and, when given, sends an initial
// snapshot before any live updates.
func ServeWs(hub *Hub, c *websocket.Conn, userId string, initial []byte) {
	client := &Client{
		Id:     uuid.NewString(),
		Hub:    hub,
		Conn:   c,
		UserId: userId,
		Send:   make(chan []byte, 256),
	}
	if initial != nil {
		client.Send <- initial
	}
	if !client.Hub.Register(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
