package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches an upgraded connection to the hub under sessionID and
// blocks until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string) {
	client := NewClient(hub, c, sessionID)
	hub.register <- client

	go client.writePump()
	client.readPump()
}

// Attach registers an in-process client. Tests use it to observe pushes
// without a network connection.
func (h *Hub) Attach(sessionID string) *Client {
	client := NewClient(h, nil, sessionID)
	h.register <- client
	return client
}

// Detach removes a client registered with Attach.
func (h *Hub) Detach(client *Client) {
	h.unregister <- client
}
