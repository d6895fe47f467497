package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/uaite/food-tracker-api/config"
	"github.com/uaite/food-tracker-api/models"
	"github.com/uaite/food-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// AuthMiddleware resolves the bearer token against the two configured
// secrets and loads the matching user row. There is no expiry and no
// per-request state beyond the resolved identity.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		if token != cfg.UserToken && token != cfg.AdminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		var user models.User
		if err := db.Where("token = ?", token).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User not found for token"})
				return
			}
			utils.Zlog.Error("auth user lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route on the ADMIN role. It always runs behind
// AuthMiddleware; a missing identity still answers 401 rather than panic.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
