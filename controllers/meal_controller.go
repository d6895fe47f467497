package controllers

import (
	"errors"
	"net/http"

	"github.com/uaite/food-tracker-api/services"
	"github.com/uaite/food-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MealController struct {
	svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{svc: svc}
}

func (ctrl *MealController) List(c *gin.Context) {
	meals, err := ctrl.svc.List(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("list meals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

type updateMealRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	MaxEntries *int    `json:"maxEntries" binding:"omitempty,min=1,max=10"`
}

func (ctrl *MealController) Update(c *gin.Context) {
	var body updateMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindingError(c, err)
		return
	}

	meal, err := ctrl.svc.Update(c.Request.Context(), c.Param("id"), services.UpdateMealInput{
		Name:       body.Name,
		MaxEntries: body.MaxEntries,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		case errors.Is(err, services.ErrDuplicateMealName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A meal with this name already exists"})
		default:
			utils.Zlog.Error("update meal failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}
