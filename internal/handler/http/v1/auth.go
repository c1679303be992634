package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/geoface_attendance/internal/auth"
)

// @Summary Admin login
// @Description Exchange the admin password for a bearer token
// @Tags Admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Wrong password"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if !h.bind(c, "login", &input) {
		return
	}
	log := h.logger.WithField("method", "login")

	token, err := h.authenticator.Login(input.Password)
	if errors.Is(err, auth.ErrInvalidPassword) {
		log.Warn("Admin login with wrong password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to issue admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	log.Info("Admin logged in")
	c.JSON(http.StatusOK, LoginResponse{AccessToken: token.AccessToken, ExpiresAt: token.ExpiresAt.Unix()})
}
