package routes

import (
	"net/http"
	"time"

	"github.com/uaite/food-tracker-api/config"
	"github.com/uaite/food-tracker-api/controllers"
	"github.com/uaite/food-tracker-api/middlewares"
	"github.com/uaite/food-tracker-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	entrySvc := services.NewFoodEntryService(db)
	mealSvc := services.NewMealService(db)
	reportSvc := services.NewReportService(db)

	authCtrl := controllers.NewAuthController(db)
	entryCtrl := controllers.NewFoodEntryController(entrySvc)
	mealCtrl := controllers.NewMealController(mealSvc)
	adminCtrl := controllers.NewAdminController(reportSvc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"env":       cfg.Env,
		})
	})

	authenticated := middlewares.AuthMiddleware(db, cfg)

	auth := r.Group("/auth")
	auth.Use(authenticated)
	{
		auth.POST("/verify", authCtrl.Verify)
		auth.GET("/me", authCtrl.Me)
	}

	api := r.Group("/api")
	api.Use(authenticated)
	{
		entries := api.Group("/food-entries")
		{
			entries.GET("", entryCtrl.List)
			entries.POST("", entryCtrl.Create)
			entries.GET("/daily-totals", entryCtrl.DailyTotals)
			entries.PUT("/:id", entryCtrl.Update)
			entries.DELETE("/:id", entryCtrl.Delete)
		}

		meals := api.Group("/meals")
		{
			meals.GET("", mealCtrl.List)
			meals.PUT("/:id", mealCtrl.Update)
		}

		admin := api.Group("/admin")
		admin.Use(middlewares.RequireAdmin())
		{
			admin.GET("/reports/weekly-comparison", adminCtrl.WeeklyComparison)
			admin.GET("/reports/average-calories", adminCtrl.AverageCalories)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return r
}
