package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/uaite/food-tracker-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Meal{}, &models.FoodEntry{}))
	return db
}

type fixtures struct {
	john      models.User
	admin     models.User
	breakfast models.Meal
	lunch     models.Meal
	dinner    models.Meal
	snack     models.Meal
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	f := fixtures{
		john:      models.User{Email: "john@example.com", Name: "John Doe", Role: models.RoleUser, DailyCalorieLimit: 2100, Token: "user-token-123"},
		admin:     models.User{Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin, DailyCalorieLimit: 2500, Token: "admin-token-456"},
		breakfast: models.Meal{Name: "Breakfast", MaxEntries: 3},
		lunch:     models.Meal{Name: "Lunch", MaxEntries: 5},
		dinner:    models.Meal{Name: "Dinner", MaxEntries: 2},
		snack:     models.Meal{Name: "Snack", MaxEntries: 2},
	}
	require.NoError(t, db.Create(&f.john).Error)
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.breakfast).Error)
	require.NoError(t, db.Create(&f.lunch).Error)
	require.NoError(t, db.Create(&f.dinner).Error)
	require.NoError(t, db.Create(&f.snack).Error)
	return f
}

func at(t *testing.T, day time.Time, hour, minute int) time.Time {
	t.Helper()
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func mustCreateEntry(t *testing.T, db *gorm.DB, user models.User, meal models.Meal, food string, calories int, when time.Time) models.FoodEntry {
	t.Helper()
	entry := models.FoodEntry{
		UserID:        user.ID,
		MealID:        meal.ID,
		FoodName:      food,
		Calories:      calories,
		EntryDateTime: when,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}
