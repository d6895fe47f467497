package config

import (
	"fmt"

	"github.com/uaite/food-tracker-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed upserts the two fixed identities and the four meal slots. It runs
// on every startup and is idempotent: users key on email, meals on name.
// Tokens are refreshed from the environment so rotating a secret only
// needs a restart.
func Seed(db *gorm.DB, cfg *Config) error {
	users := []models.User{
		{
			Email:             "john@example.com",
			Name:              "John Doe",
			Role:              models.RoleUser,
			DailyCalorieLimit: 2100,
			Token:             cfg.UserToken,
		},
		{
			Email:             "admin@example.com",
			Name:              "Admin User",
			Role:              models.RoleAdmin,
			DailyCalorieLimit: 2500,
			Token:             cfg.AdminToken,
		},
	}
	for _, u := range users {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role", "daily_calorie_limit", "token"}),
		}).Create(&u).Error
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	meals := []models.Meal{
		{Name: "Breakfast", MaxEntries: 3},
		{Name: "Lunch", MaxEntries: 5},
		{Name: "Dinner", MaxEntries: 2},
		{Name: "Snack", MaxEntries: 2},
	}
	for _, m := range meals {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&m).Error
		if err != nil {
			return fmt.Errorf("seed meal %s: %w", m.Name, err)
		}
	}

	return nil
}
