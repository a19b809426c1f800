package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/gin-gonic/gin"
)

// Message is a single server-sent event.
type Message struct {
	Event string
	Data  interface{}
}

// Manager is a broadcast hub pushing engine events to connected desktop shells.
// There is normally exactly one subscriber (the kanban window), but nothing
// breaks with several.
type Manager struct {
	clients    map[chan Message]struct{}
	register   chan chan Message
	unregister chan chan Message
	broadcast  chan Message
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[chan Message]struct{}),
		register:   make(chan chan Message),
		unregister: make(chan chan Message),
		broadcast:  make(chan Message, 16),
	}
}

// Run owns the client set. Call it once in a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.clients[client] = struct{}{}
			log.Printf("[SSE] Client connected (%d total)", len(m.clients))
		case client := <-m.unregister:
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client)
			}
			log.Printf("[SSE] Client disconnected (%d total)", len(m.clients))
		case msg := <-m.broadcast:
			for client := range m.clients {
				select {
				case client <- msg:
				default:
					// Slow consumer, drop the event rather than block the hub.
				}
			}
		}
	}
}

// Broadcast sends an event to every connected client.
func (m *Manager) Broadcast(event string, payload interface{}) {
	m.broadcast <- Message{Event: event, Data: payload}
}

// ServeHTTP streams events to one client until it disconnects.
func (m *Manager) ServeHTTP(c *gin.Context) {
	client := make(chan Message, 8)
	m.register <- client
	defer func() { m.unregister <- client }()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			data, err := json.Marshal(msg.Data)
			if err != nil {
				log.Printf("[SSE] Failed to marshal event %q: %v", msg.Event, err)
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
