package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/policy"
	"github.com/reportdesk/backend/internal/repository"
)

const currentUserKey = "currentUser"

// Identify resolves the caller from the X-User-ID header when present.
// Reads stay anonymous; mutating handlers require a user via
// currentUser and reject the request otherwise. Session handling lives
// outside this service, the header is trusted.
func Identify(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.Next()
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-User-ID"})
			return
		}
		user, err := userRepo.Get(uint(id))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the resolved caller, or nil with a 401 already
// written.
func currentUser(c *gin.Context) *model.UserProfile {
	value, ok := c.Get(currentUserKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}
	user, ok := value.(*model.UserProfile)
	if !ok || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}
	return user
}

func roleOf(user *model.UserProfile) policy.Role {
	return policy.Normalize(user.Role)
}
