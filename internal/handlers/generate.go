package handlers

import (
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/services"

	"github.com/gin-gonic/gin"
)

type GenerateHandler struct {
	generateService *services.GenerateService
}

func NewGenerateHandler(generateService *services.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: generateService}
}

type GenerateQuizRequest struct {
	Topic        string `json:"topic" binding:"required,min=1,max=255" example:"harry potter"`
	Difficulty   string `json:"difficulty" example:"medium"`
	NumQuestions int    `json:"num_questions" binding:"omitempty,min=1,max=20" example:"5"`
}

// CheckAI godoc
// @Summary      Check whether AI quiz generation is configured
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/quizzes/ai-status [get]
func (h *GenerateHandler) CheckAI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "available": h.generateService.IsAvailable()})
}

// Generate godoc
// @Summary      Generate quiz questions with AI
// @Description  Produce multiple-choice questions for a topic without creating a room
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GenerateQuizRequest true "Generation parameters"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /api/v1/quizzes/generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	if !h.generateService.IsAvailable() {
		failWith(c, http.StatusServiceUnavailable, "quiz generation is not configured, set GROQ_API_KEY")
		return
	}

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := h.generateService.GenerateQuestions(req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		failWith(c, http.StatusBadGateway, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}
