package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks the websocket connections of each game room and fans
// server-side events out to them. Delivery is best-effort: a connection
// that fails a write is dropped and the client is expected to re-pull the
// room state when it reconnects.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*websocket.Conn]bool)
	}
	h.rooms[code][conn] = true
	log.Printf("ws: client connected to room %s (total: %d)", code, len(h.rooms[code]))
}

func (h *Hub) RemoveConnection(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[code]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.rooms, code)
		}
		log.Printf("ws: client disconnected from room %s", code)
	}
}

// ConnectionCount returns the number of live connections for a room.
func (h *Hub) ConnectionCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

// Broadcast sends a message to every connection in the room. Connections
// that fail the write are closed and removed.
func (h *Hub) Broadcast(code string, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[code]
	if !ok {
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}

// Send writes a message to a single connection, for replies that should not
// be broadcast (auth results, errors).
func (h *Hub) Send(conn *websocket.Conn, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("ws: write error: %v", err)
	}
}
