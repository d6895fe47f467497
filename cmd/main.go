package main

import (
	"log"

	"github.com/uaite/food-tracker-api/config"
	"github.com/uaite/food-tracker-api/routes"
	"github.com/uaite/food-tracker-api/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	utils.InitLogger(cfg.Env)
	defer utils.Zlog.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.Zlog.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := config.Seed(db, cfg); err != nil {
		utils.Zlog.Fatal("Failed to seed database", zap.Error(err))
	}

	r := routes.SetupRouter(db, cfg)

	utils.Zlog.Info("Food Tracker API listening",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Zlog.Fatal("Server stopped", zap.Error(err))
	}
}
