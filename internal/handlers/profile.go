package handlers

import (
	"net/http"

	"github.com/CS161-Software-Project/MindClash/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	profile, err := h.profileService.Get(userID)
	if err != nil {
		failWith(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// UpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ProfileInput true "Profile fields"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.Update(userID, input)
	if err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}
