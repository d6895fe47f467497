package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Static bearer credentials, one per role. Auth is an equality check
	// against these two secrets followed by a user-row lookup.
	UserToken  string
	AdminToken string

	CORSOrigin string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getenv("PORT", "3001"),
		Env:        getenv("APP_ENV", "development"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "foodtracker"),
		DBPort:     getenv("DB_PORT", "5432"),
		UserToken:  os.Getenv("USER_TOKEN"),
		AdminToken: os.Getenv("ADMIN_TOKEN"),
		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if cfg.UserToken == "" {
		return nil, errors.New("USER_TOKEN is required")
	}
	if cfg.AdminToken == "" {
		return nil, errors.New("ADMIN_TOKEN is required")
	}
	if cfg.UserToken == cfg.AdminToken {
		return nil, errors.New("USER_TOKEN and ADMIN_TOKEN must differ")
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
