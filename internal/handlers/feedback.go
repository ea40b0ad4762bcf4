package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/middleware"
	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

type SendFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Message string `json:"message" binding:"required" example:"Great app!"`
}

// SendFeedback godoc
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendFeedbackRequest true "Feedback data"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /feedback/send-feedback [post]
func (h *FeedbackHandler) SendFeedback(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req SendFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.feedbackService.Submit(user.ID, req.Rating, req.Message); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Feedback submitted successfully"})
}

// GetFeedback godoc
// @Summary      List all feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} ErrorResponse
// @Router       /feedback/get-feedback [get]
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	feedback, err := h.feedbackService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}
