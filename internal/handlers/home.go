package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/middleware"
	"github.com/musa-q/MyArabicLearner/internal/models"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// Homepage returns the role-dependent landing payload; admins get the
// maintenance navigation.
func (h *HomeHandler) Homepage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var extraButtons []gin.H
	otherInfo := "This is a basic user"
	if user.Role == models.RoleAdmin {
		otherInfo = "This is an admin user"
		extraButtons = []gin.H{
			{"label": "Maintenance", "action": "maintenance"},
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"username":      user.Username,
		"other_info":    otherInfo,
		"extra_buttons": extraButtons,
	})
}
