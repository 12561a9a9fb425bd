package handlers

import (
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/services"
	"github.com/CS161-Software-Project/MindClash/internal/ws"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	roomService *services.RoomService
	gameService *services.GameService
	hub         *ws.Hub
	cache       *services.StateCache
}

func NewPlayHandler(roomService *services.RoomService, gameService *services.GameService, hub *ws.Hub, cache *services.StateCache) *PlayHandler {
	return &PlayHandler{
		roomService: roomService,
		gameService: gameService,
		hub:         hub,
		cache:       cache,
	}
}

type SubmitAnswerRequest struct {
	// Answer accepts an option index, a digit string or a letter ("B").
	Answer     interface{} `json:"answer" binding:"required"`
	AnswerTime *float64    `json:"answer_time" binding:"required" example:"12.4"`
}

// SubmitAnswer godoc
// @Summary      Submit an answer for the active question
// @Description  One answer per player per round; scoring is time-weighted
// @Tags         play
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Param        request body SubmitAnswerRequest true "Answer"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/answer [post]
func (h *PlayHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.gameService.SubmitAnswer(code, userID, req.Answer, *req.AnswerTime)
	if err != nil {
		fail(c, err)
		return
	}

	pushRoomState(h.roomService, h.hub, h.cache, c, code, "answer_submitted")

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Answer submitted successfully",
		"score":        result.Score,
		"all_answered": result.AllAnswered,
	})
}
