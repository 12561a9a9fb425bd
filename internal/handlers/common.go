package handlers

import (
	"errors"
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/game"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"operation successful"`
}

// fail writes err with the status its taxonomy maps to.
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func failWith(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomNotFound), errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
