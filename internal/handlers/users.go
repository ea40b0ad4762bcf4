package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type DeleteUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ViewUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} map[string]interface{}
// @Failure      403 {object} ErrorResponse
// @Router       /user/view-users [post]
func (h *UserHandler) ViewUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, user := range users {
		list = append(list, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
	c.JSON(http.StatusOK, list)
}

// DeleteUser godoc
// @Summary      Delete a user and everything it owns
// @Description  Transactionally removes the user's sessions, quizzes, questions and feedback
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DeleteUserRequest true "Target user"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /user/delete-user [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Username == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email or username is required"})
		return
	}

	if err := h.userService.DeleteUser(req.Username, req.Email); err != nil {
		respondError(c, err)
		return
	}

	target := req.Username
	if target == "" {
		target = req.Email
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User " + target + " and all associated data deleted successfully"})
}
