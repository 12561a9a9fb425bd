package handlers

import (
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/services"
	"github.com/CS161-Software-Project/MindClash/internal/ws"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService     *services.RoomService
	generateService *services.GenerateService
	hub             *ws.Hub
	cache           *services.StateCache
}

func NewRoomHandler(roomService *services.RoomService, generateService *services.GenerateService, hub *ws.Hub, cache *services.StateCache) *RoomHandler {
	return &RoomHandler{
		roomService:     roomService,
		generateService: generateService,
		hub:             hub,
		cache:           cache,
	}
}

// pushRoomState rebuilds the snapshot, broadcasts it to the room and
// refreshes the redis copy for the reconnect path.
func pushRoomState(roomService *services.RoomService, hub *ws.Hub, cache *services.StateCache, c *gin.Context, code, msgType string) *services.RoomState {
	state, err := roomService.RoomState(code)
	if err != nil {
		return nil
	}
	hub.Broadcast(code, ws.WSMessage{Type: msgType, Data: state})
	cache.Put(c.Request.Context(), code, state)
	return state
}

type CreateRoomRequest struct {
	Topic           string                   `json:"topic" binding:"required,min=1,max=255" example:"world history"`
	Difficulty      string                   `json:"difficulty" example:"medium"`
	NumQuestions    int                      `json:"num_questions" example:"5"`
	TimePerQuestion int                      `json:"time_per_question" example:"30"`
	MaxPlayers      int                      `json:"max_players" example:"8"`
	Questions       []services.QuestionInput `json:"questions"`
}

type JoinRoomRequest struct {
	Code string `json:"code" binding:"required,len=6" example:"K7KPKV"`
}

// CreateRoom godoc
// @Summary      Create a game room
// @Description  Create a room from provided questions, or let the AI generate them from the topic when none are given
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRoomRequest true "Room settings"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	questions := req.Questions
	if len(questions) == 0 {
		generated, err := h.generateService.GenerateQuestions(req.Topic, req.Difficulty, req.NumQuestions)
		if err != nil {
			failWith(c, http.StatusBadGateway, err.Error())
			return
		}
		for _, q := range generated {
			questions = append(questions, services.QuestionInput{
				Text:          q.Text,
				Options:       q.Options,
				CorrectAnswer: q.CorrectOption,
			})
		}
	}

	room, err := h.roomService.CreateRoom(userID, services.CreateRoomInput{
		Topic:           req.Topic,
		Difficulty:      req.Difficulty,
		TimePerQuestion: req.TimePerQuestion,
		MaxPlayers:      req.MaxPlayers,
		Questions:       questions,
	})
	if err != nil {
		fail(c, err)
		return
	}

	state := pushRoomState(h.roomService, h.hub, h.cache, c, room.Code, "game_state_update")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Game created successfully",
		"code":    room.Code,
		"state":   state,
	})
}

// JoinRoom godoc
// @Summary      Join a room by code
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JoinRoomRequest true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/join [post]
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	player, err := h.roomService.JoinRoom(req.Code, userID)
	if err != nil {
		fail(c, err)
		return
	}

	h.hub.Broadcast(req.Code, ws.WSMessage{
		Type: "player_joined",
		Data: gin.H{"username": player.User.Username},
	})
	state := pushRoomState(h.roomService, h.hub, h.cache, c, req.Code, "game_state_update")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully joined the game",
		"code":    req.Code,
		"state":   state,
	})
}

// GetRoom godoc
// @Summary      Get the current room snapshot
// @Description  Pull-style full state, used by clients recovering from missed broadcasts
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	code := c.Param("code")

	if state := h.cache.Get(c.Request.Context(), code); state != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
		return
	}

	state, err := h.roomService.RoomState(code)
	if err != nil {
		fail(c, err)
		return
	}
	h.cache.Put(c.Request.Context(), code, state)

	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

// StartGame godoc
// @Summary      Start the game (host only)
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/start [post]
func (h *RoomHandler) StartGame(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	if _, err := h.roomService.StartGame(code, userID); err != nil {
		fail(c, err)
		return
	}

	state := pushRoomState(h.roomService, h.hub, h.cache, c, code, "game_started")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Game started successfully", "state": state})
}

// NextQuestion godoc
// @Summary      Advance to the next question (host only)
// @Description  Requires every player to have answered; resets per-round answer state
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/next [post]
func (h *RoomHandler) NextQuestion(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	room, err := h.roomService.AdvanceQuestion(code, userID)
	if err != nil {
		fail(c, err)
		return
	}

	state := pushRoomState(h.roomService, h.hub, h.cache, c, code, "next_question")

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Moved to next question",
		"current_question": room.CurrentQuestion,
		"game_status":      room.Status,
		"state":            state,
	})
}

type ReadyRequest struct {
	Ready *bool `json:"ready" binding:"required"`
}

// SetReady godoc
// @Summary      Set the caller's ready flag
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Param        request body ReadyRequest true "Ready flag"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/ready [post]
func (h *RoomHandler) SetReady(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	var req ReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.roomService.SetReady(code, userID, *req.Ready); err != nil {
		fail(c, err)
		return
	}

	state := pushRoomState(h.roomService, h.hub, h.cache, c, code, "game_state_update")

	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

// LeaveRoom godoc
// @Summary      Leave the room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/leave [post]
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	if err := h.roomService.LeaveRoom(code, userID); err != nil {
		fail(c, err)
		return
	}

	h.hub.Broadcast(code, ws.WSMessage{
		Type: "player_left",
		Data: gin.H{"user_id": userID},
	})
	pushRoomState(h.roomService, h.hub, h.cache, c, code, "game_state_update")

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "left the game"})
}

// GetLeaderboard godoc
// @Summary      Get the room leaderboard
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/leaderboard [get]
func (h *RoomHandler) GetLeaderboard(c *gin.Context) {
	code := c.Param("code")

	entries, err := h.roomService.Leaderboard(code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": entries})
}

// GetAnswerDistribution godoc
// @Summary      Per-option answer counts for the active question
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/answer-distribution [get]
func (h *RoomHandler) GetAnswerDistribution(c *gin.Context) {
	code := c.Param("code")

	dist, err := h.roomService.CurrentAnswerDistribution(code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "distribution": dist})
}
