package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub spins up an echo-less websocket server that registers every
// incoming connection with the hub under the given room code, and dials it.
func dialHub(t *testing.T, hub *Hub, code string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.AddConnection(code, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return msg
}

func TestBroadcastReachesAllRoomConnections(t *testing.T) {
	hub := NewHub()

	a := dialHub(t, hub, "AB23CD")
	b := dialHub(t, hub, "AB23CD")
	other := dialHub(t, hub, "XY45ZW")

	waitForCount(t, hub, "AB23CD", 2)

	hub.Broadcast("AB23CD", WSMessage{Type: "chat", Data: map[string]string{"text": "hi"}})

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != "chat" {
			t.Errorf("message type = %q, want chat", msg.Type)
		}
	}

	// The other room must stay silent.
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Error("connection in another room received the broadcast")
	}
}

func TestBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()
	// Should simply be a no-op.
	hub.Broadcast("NOROOM", WSMessage{Type: "chat", Data: nil})
}

func TestSend(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "AB23CD")
	waitForCount(t, hub, "AB23CD", 1)

	var server *websocket.Conn
	hub.mu.RLock()
	for c := range hub.rooms["AB23CD"] {
		server = c
	}
	hub.mu.RUnlock()

	hub.Send(server, WSMessage{Type: "auth_success", Data: map[string]string{"username": "alice"}})

	msg := readMessage(t, conn)
	if msg.Type != "auth_success" {
		t.Errorf("message type = %q, want auth_success", msg.Type)
	}
}

func TestRemoveConnection(t *testing.T) {
	hub := NewHub()
	dialHub(t, hub, "AB23CD")
	waitForCount(t, hub, "AB23CD", 1)

	var server *websocket.Conn
	hub.mu.RLock()
	for c := range hub.rooms["AB23CD"] {
		server = c
	}
	hub.mu.RUnlock()

	hub.RemoveConnection("AB23CD", server)
	if n := hub.ConnectionCount("AB23CD"); n != 0 {
		t.Errorf("connection count = %d after remove, want 0", n)
	}
}

func TestBroadcastDropsDeadConnections(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "AB23CD")
	waitForCount(t, hub, "AB23CD", 1)

	var server *websocket.Conn
	hub.mu.RLock()
	for c := range hub.rooms["AB23CD"] {
		server = c
	}
	hub.mu.RUnlock()

	conn.Close()
	server.Close()

	hub.Broadcast("AB23CD", WSMessage{Type: "chat", Data: nil})
	if n := hub.ConnectionCount("AB23CD"); n != 0 {
		t.Errorf("dead connection not dropped, count = %d", n)
	}
}

// waitForCount waits for the server-side registration to catch up with the
// dialer, which returns before the handler has run AddConnection.
func waitForCount(t *testing.T, hub *Hub, code string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectionCount(code) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %s never reached %d connections", code, want)
}
