package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/middleware"
	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessionService *services.SessionService
}

func NewAuthHandler(sessionService *services.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"a@x.com"`
	Username string `json:"username" binding:"omitempty,min=3,max=80" example:"learner1"`
	DeviceID string `json:"device_id" example:"web-1f0a"`
}

type VerifyRequest struct {
	Email      string `json:"email" binding:"required,email" example:"a@x.com"`
	Token      string `json:"token" binding:"required" example:"hc2Vzc2lvbiB0b2tlbiBleGFtcGxl"`
	DeviceID   string `json:"device_id" binding:"required" example:"web-1f0a"`
	DeviceName string `json:"device_name" example:"Firefox on Linux"`
	DeviceType string `json:"device_type" example:"browser"`
}

type RefreshRequest struct {
	Email        string `json:"email" binding:"required,email" example:"a@x.com"`
	RefreshToken string `json:"refresh_token" binding:"required"`
	DeviceID     string `json:"device_id" binding:"required" example:"web-1f0a"`
}

type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email,omitempty"`
}

// Login godoc
// @Summary      Start a passwordless login
// @Description  Email a single-use login token to the user, creating the account when a username is supplied
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login data"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.sessionService.StartLogin(req.Email, req.Username); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Authentication token sent",
		"email_verified": false,
	})
}

// Verify godoc
// @Summary      Verify a login token
// @Description  Exchange the emailed login token for an access/refresh token pair bound to the device
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyRequest true "Verification data"
// @Success      200 {object} TokenPairResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	device := services.DeviceInfo{
		Identifier: req.DeviceID,
		Name:       req.DeviceName,
		Type:       req.DeviceType,
	}
	pair, err := h.sessionService.CompleteLogin(req.Email, req.Token, device, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Email:        req.Email,
	})
}

// RefreshToken godoc
// @Summary      Rotate the token pair
// @Description  Exchange a valid refresh token for a fresh access/refresh pair; the old pair is invalidated
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh data"
// @Success      200 {object} TokenPairResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	pair, err := h.sessionService.Refresh(req.Email, req.DeviceID, req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout godoc
// @Summary      Log out the current device
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]bool
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.sessionService.Logout(session); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// LogoutAll godoc
// @Summary      Deactivate every other session
// @Description  Admin escape hatch; spares only the calling session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.sessionService.LogoutAllExcept(session.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "All other sessions logged out"})
}

// ListSessions godoc
// @Summary      List the caller's active sessions
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /auth/sessions [get]
func (h *AuthHandler) ListSessions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessions, err := h.sessionService.ListSessions(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
