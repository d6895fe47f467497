package controllers

import (
	"net/http"

	"github.com/uaite/food-tracker-api/services"
	"github.com/uaite/food-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController serves the cross-user reports. Routes are mounted
// behind RequireAdmin.
type AdminController struct {
	svc *services.ReportService
}

func NewAdminController(svc *services.ReportService) *AdminController {
	return &AdminController{svc: svc}
}

func (ctrl *AdminController) WeeklyComparison(c *gin.Context) {
	report, err := ctrl.svc.WeeklyComparison(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("weekly comparison report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate weekly comparison report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (ctrl *AdminController) AverageCalories(c *gin.Context) {
	report, err := ctrl.svc.AverageCalories(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("average calories report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate average calories report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
