package services

import (
	"context"
	"testing"
	"time"

	"github.com/uaite/food-tracker-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyComparison(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewReportService(db)

	now := time.Now()

	insertWithCreatedAt := func(food string, createdAt time.Time) {
		entry := models.FoodEntry{
			UserID:        f.john.ID,
			MealID:        f.lunch.ID,
			FoodName:      food,
			Calories:      400,
			EntryDateTime: createdAt,
			CreatedAt:     createdAt,
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	// this week: 3 entries, one of them today
	insertWithCreatedAt("Today", now.Add(-1*time.Hour))
	insertWithCreatedAt("Two days ago", now.AddDate(0, 0, -2))
	insertWithCreatedAt("Five days ago", now.AddDate(0, 0, -5))
	// previous week: 2 entries
	insertWithCreatedAt("Nine days ago", now.AddDate(0, 0, -9))
	insertWithCreatedAt("Twelve days ago", now.AddDate(0, 0, -12))
	// outside both windows
	insertWithCreatedAt("Twenty days ago", now.AddDate(0, 0, -20))

	report, err := svc.WeeklyComparison(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, report.Today.Count)
	assert.EqualValues(t, 3, report.ThisWeek.Count)
	assert.EqualValues(t, 2, report.PreviousWeek.Count)
	assert.EqualValues(t, 1, report.Comparison.Difference)
	assert.Equal(t, 50, report.Comparison.PercentageChange)
	assert.Equal(t, "increase", report.Comparison.Trend)
}

func TestWeeklyComparisonNegativeHalfPercentRoundsUp(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewReportService(db)

	now := time.Now()
	insert := func(n int, daysBack int) {
		for i := 0; i < n; i++ {
			createdAt := now.AddDate(0, 0, -daysBack).Add(-time.Duration(i) * time.Minute)
			entry := models.FoodEntry{
				UserID:        f.john.ID,
				MealID:        f.lunch.ID,
				FoodName:      "Meal",
				Calories:      400,
				EntryDateTime: createdAt,
				CreatedAt:     createdAt,
			}
			require.NoError(t, db.Create(&entry).Error)
		}
	}
	insert(7, 2)  // this week
	insert(8, 10) // previous week

	report, err := svc.WeeklyComparison(context.Background())
	require.NoError(t, err)

	// -1/8 = -12.5%; halves round toward positive infinity, so -12
	assert.EqualValues(t, -1, report.Comparison.Difference)
	assert.Equal(t, -12, report.Comparison.PercentageChange)
	assert.Equal(t, "decrease", report.Comparison.Trend)
}

func TestWeeklyComparisonEmptyPreviousWeek(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewReportService(db)

	now := time.Now()
	for i := 0; i < 4; i++ {
		entry := models.FoodEntry{
			UserID:        f.john.ID,
			MealID:        f.lunch.ID,
			FoodName:      "Recent",
			Calories:      400,
			EntryDateTime: now.AddDate(0, 0, -i),
			CreatedAt:     now.AddDate(0, 0, -i).Add(-time.Hour),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	report, err := svc.WeeklyComparison(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 4, report.ThisWeek.Count)
	assert.EqualValues(t, 0, report.PreviousWeek.Count)
	assert.EqualValues(t, 4, report.Comparison.Difference)
	// an empty previous week reports 0%, never a division error
	assert.Equal(t, 0, report.Comparison.PercentageChange)
}

func TestWeeklyComparisonNoEntries(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	svc := NewReportService(db)

	report, err := svc.WeeklyComparison(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 0, report.Today.Count)
	assert.EqualValues(t, 0, report.ThisWeek.Count)
	assert.Equal(t, 0, report.Comparison.PercentageChange)
	assert.Equal(t, "no_change", report.Comparison.Trend)
}

func TestAverageCalories(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewReportService(db)

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	mustCreateEntry(t, db, f.john, f.breakfast, "Oatmeal", 300, twoDaysAgo)
	mustCreateEntry(t, db, f.john, f.lunch, "Salad", 500, twoDaysAgo)
	mustCreateEntry(t, db, f.admin, f.lunch, "Quinoa bowl", 200, twoDaysAgo)
	// outside the 7-day window
	mustCreateEntry(t, db, f.john, f.dinner, "Old dinner", 900, time.Now().AddDate(0, 0, -10))

	report, err := svc.AverageCalories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.OverallAverage.TotalUsers)
	assert.EqualValues(t, 1000, report.OverallAverage.TotalCalories)
	assert.Equal(t, 500, report.OverallAverage.AverageCaloriesPerUser)
	assert.Equal(t, 333, report.OverallAverage.AverageCaloriesPerEntry)

	require.Len(t, report.UserBreakdown, 2)
	byEmail := map[string]UserCalorieBreakdown{}
	for _, b := range report.UserBreakdown {
		require.NotNil(t, b.User)
		byEmail[b.User.Email] = b
	}

	john := byEmail["john@example.com"]
	assert.EqualValues(t, 800, john.TotalCalories)
	assert.EqualValues(t, 2, john.EntryCount)
	assert.Equal(t, 400, john.AverageCaloriesPerEntry)

	admin := byEmail["admin@example.com"]
	assert.EqualValues(t, 200, admin.TotalCalories)
	assert.EqualValues(t, 1, admin.EntryCount)
	assert.Equal(t, 200, admin.AverageCaloriesPerEntry)
}

func TestAverageCaloriesNoContributors(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	svc := NewReportService(db)

	report, err := svc.AverageCalories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.OverallAverage.TotalUsers)
	assert.EqualValues(t, 0, report.OverallAverage.TotalCalories)
	assert.Equal(t, 0, report.OverallAverage.AverageCaloriesPerUser)
	assert.Empty(t, report.UserBreakdown)
}
