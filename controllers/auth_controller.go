package controllers

import (
	"errors"
	"net/http"

	"github.com/uaite/food-tracker-api/middlewares"
	"github.com/uaite/food-tracker-api/models"
	"github.com/uaite/food-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Verify echoes the identity the token resolved to.
func (ctrl *AuthController) Verify(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No user found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":                user.ID,
		"email":             user.Email,
		"name":              user.Name,
		"role":              user.Role,
		"dailyCalorieLimit": user.DailyCalorieLimit,
	}})
}

// Me re-reads the caller's row so the response reflects storage, not the
// snapshot the middleware attached.
func (ctrl *AuthController) Me(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No user found"})
		return
	}

	var user models.User
	if err := ctrl.db.First(&user, "id = ?", current.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.Zlog.Error("get user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
