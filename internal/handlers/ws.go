package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/services"
	"github.com/CS161-Software-Project/MindClash/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	authService *services.AuthService
	roomService *services.RoomService
	gameService *services.GameService
	chatService *services.ChatService
	hub         *ws.Hub
	cache       *services.StateCache
}

func NewWSHandler(authService *services.AuthService, roomService *services.RoomService, gameService *services.GameService, chatService *services.ChatService, hub *ws.Hub, cache *services.StateCache) *WSHandler {
	return &WSHandler{
		authService: authService,
		roomService: roomService,
		gameService: gameService,
		chatService: chatService,
		hub:         hub,
		cache:       cache,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundMessage is the client-to-server frame. Type selects which of the
// remaining fields matter.
type inboundMessage struct {
	Type       string      `json:"type"`
	Token      string      `json:"token,omitempty"`
	Message    string      `json:"message,omitempty"`
	Answer     interface{} `json:"answer,omitempty"`
	AnswerTime float64     `json:"answer_time,omitempty"`
	Ready      *bool       `json:"ready,omitempty"`
}

// HandleRoomWebSocket godoc
// @Summary      Room websocket channel
// @Description  Connect to a room's channel; authenticate with an auth frame, then exchange game events
// @Tags         websocket
// @Param        code path string true "Room code"
// @Router       /ws/room/{code} [get]
func (h *WSHandler) HandleRoomWebSocket(c *gin.Context) {
	code := c.Param("code")
	if _, err := h.roomService.GetRoomByCode(code); err != nil {
		fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(code, conn)

	var userID uint
	var username string
	authed := false

	defer func() {
		h.hub.RemoveConnection(code, conn)
		if authed {
			h.hub.Broadcast(code, ws.WSMessage{
				Type: "player_left",
				Data: gin.H{"user_id": userID, "username": username},
			})
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.sendError(conn, "Invalid JSON")
			continue
		}

		if msg.Type == "auth" {
			uid, err := h.authService.ValidateToken(msg.Token)
			if err != nil {
				h.hub.Send(conn, ws.WSMessage{Type: "auth_error", Data: gin.H{"message": "Invalid token"}})
				continue
			}
			user, err := h.authService.GetUser(uid)
			if err != nil {
				h.hub.Send(conn, ws.WSMessage{Type: "auth_error", Data: gin.H{"message": "Invalid token"}})
				continue
			}
			userID = uid
			username = user.Username
			authed = true

			h.hub.Send(conn, ws.WSMessage{
				Type: "auth_success",
				Data: gin.H{"user": gin.H{"id": user.ID, "username": user.Username}},
			})
			h.sendState(c, conn, code)
			h.hub.Broadcast(code, ws.WSMessage{
				Type: "player_joined",
				Data: gin.H{"username": username},
			})
			continue
		}

		if !authed {
			h.sendError(conn, "authentication required")
			continue
		}

		h.dispatch(c, conn, code, userID, msg)
	}
}

// dispatch handles one authenticated frame. Each branch goes through the
// same services as the HTTP endpoints so the two paths cannot diverge on
// validation or scoring.
func (h *WSHandler) dispatch(c *gin.Context, conn *websocket.Conn, code string, userID uint, msg inboundMessage) {
	switch msg.Type {
	case "chat":
		chatMsg, err := h.chatService.Send(code, userID, msg.Message)
		if err != nil {
			h.sendError(conn, err.Error())
			return
		}
		h.hub.Broadcast(code, ws.WSMessage{Type: "chat", Data: chatMsg})

	case "player_ready":
		ready := true
		if msg.Ready != nil {
			ready = *msg.Ready
		}
		if _, err := h.roomService.SetReady(code, userID, ready); err != nil {
			h.sendError(conn, err.Error())
			return
		}
		pushRoomState(h.roomService, h.hub, h.cache, c, code, "game_state_update")

	case "start_game":
		if _, err := h.roomService.StartGame(code, userID); err != nil {
			h.sendError(conn, err.Error())
			return
		}
		pushRoomState(h.roomService, h.hub, h.cache, c, code, "game_started")

	case "next_question":
		if _, err := h.roomService.AdvanceQuestion(code, userID); err != nil {
			h.sendError(conn, err.Error())
			return
		}
		pushRoomState(h.roomService, h.hub, h.cache, c, code, "next_question")

	case "submit_answer":
		result, err := h.gameService.SubmitAnswer(code, userID, msg.Answer, msg.AnswerTime)
		if err != nil {
			h.sendError(conn, err.Error())
			return
		}
		h.hub.Send(conn, ws.WSMessage{Type: "answer_result", Data: result})
		pushRoomState(h.roomService, h.hub, h.cache, c, code, "answer_submitted")

	default:
		h.sendError(conn, "unknown message type: "+msg.Type)
	}
}

// sendState serves the snapshot to one connection, redis first, database
// as fallback.
func (h *WSHandler) sendState(c *gin.Context, conn *websocket.Conn, code string) {
	state := h.cache.Get(c.Request.Context(), code)
	if state == nil {
		var err error
		state, err = h.roomService.RoomState(code)
		if err != nil {
			return
		}
		h.cache.Put(c.Request.Context(), code, state)
	}
	h.hub.Send(conn, ws.WSMessage{Type: "game_state_update", Data: state})
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	h.hub.Send(conn, ws.WSMessage{Type: "error", Data: gin.H{"message": message}})
}
