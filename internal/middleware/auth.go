package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/musa-q/MyArabicLearner/internal/models"
	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userKey    = "user"
	sessionKey = "session"
)

// RequireAuth is the single admission point for protected routes. It resolves
// an active session from the bearer token and X-Device-ID header, optionally
// enforces a role set, and refreshes the session's activity metadata.
func RequireAuth(sessions *services.SessionService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		deviceID := c.GetHeader("X-Device-ID")
		if header == "" || deviceID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, session, err := sessions.Authenticate(parts[1], deviceID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		sessions.Touch(session, c.ClientIP())

		c.Set(userKey, user)
		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userKey).(*models.User)
	return user
}

// CurrentSession returns the session resolved by RequireAuth.
func CurrentSession(c *gin.Context) *models.Session {
	session, _ := c.MustGet(sessionKey).(*models.Session)
	return session
}
