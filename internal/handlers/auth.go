package handlers

import (
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100" example:"player1"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"player1"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type AuthResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a user account and return a JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Success: true, Token: token})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate and return a JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login data"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		failWith(c, http.StatusUnauthorized, err.Error())
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Success: true, Token: token})
}

// CurrentUser godoc
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/me [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	user, err := h.authService.GetUser(userID)
	if err != nil {
		failWith(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
