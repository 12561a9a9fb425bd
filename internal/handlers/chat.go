package handlers

import (
	"net/http"
	"strconv"

	"github.com/CS161-Software-Project/MindClash/internal/services"
	"github.com/CS161-Software-Project/MindClash/internal/ws"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
	hub         *ws.Hub
}

func NewChatHandler(chatService *services.ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{chatService: chatService, hub: hub}
}

type SendMessageRequest struct {
	Text string `json:"message" binding:"required,min=1,max=2000"`
}

// SendMessage godoc
// @Summary      Send a chat message to the room
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Param        request body SendMessageRequest true "Message"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.chatService.Send(code, userID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}

	h.hub.Broadcast(code, ws.WSMessage{Type: "chat", Data: msg})

	c.JSON(http.StatusCreated, gin.H{"success": true, "chat_message": msg})
}

// GetMessages godoc
// @Summary      Get chat history for the room
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Param        limit query int false "Max messages (default 100)"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	code := c.Param("code")
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.chatService.History(code, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}
