package services

import (
	"context"
	"math"
	"time"

	"github.com/uaite/food-tracker-api/models"
	"github.com/uaite/food-tracker-api/utils"

	"gorm.io/gorm"
)

// ReportService computes the admin-only cross-user aggregates.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type TodayCount struct {
	Count int64  `json:"count"`
	Date  string `json:"date"`
}

type WeekCount struct {
	Count  int64        `json:"count"`
	Period ReportPeriod `json:"period"`
}

type WeeklyComparisonReport struct {
	Today        TodayCount `json:"today"`
	ThisWeek     WeekCount  `json:"thisWeek"`
	PreviousWeek WeekCount  `json:"previousWeek"`
	Comparison   struct {
		Difference       int64  `json:"difference"`
		PercentageChange int    `json:"percentageChange"`
		Trend            string `json:"trend"`
	} `json:"comparison"`
}

// WeeklyComparison counts entries across all users by insertion time:
// today, the trailing 7 days, and the 7 days before those. The percentage
// change reports 0 when the previous week had no entries at all.
func (s *ReportService) WeeklyComparison(ctx context.Context) (*WeeklyComparisonReport, error) {
	now := time.Now()
	last7Days := now.AddDate(0, 0, -7)
	previous7Days := now.AddDate(0, 0, -14)

	thisWeek, err := s.countCreatedBetween(ctx, last7Days, now, true)
	if err != nil {
		return nil, err
	}
	previousWeek, err := s.countCreatedBetween(ctx, previous7Days, last7Days, false)
	if err != nil {
		return nil, err
	}
	today, err := s.countCreatedBetween(ctx, utils.DayStart(now), utils.DayEnd(now), true)
	if err != nil {
		return nil, err
	}

	out := &WeeklyComparisonReport{
		Today:        TodayCount{Count: today, Date: now.Format(utils.DateLayout)},
		ThisWeek:     WeekCount{Count: thisWeek, Period: ReportPeriod{From: last7Days, To: now}},
		PreviousWeek: WeekCount{Count: previousWeek, Period: ReportPeriod{From: previous7Days, To: last7Days}},
	}

	difference := thisWeek - previousWeek
	out.Comparison.Difference = difference
	if previousWeek > 0 {
		// half rounds toward +inf, so a -12.5% change reports -12
		pct := float64(difference) / float64(previousWeek) * 100
		out.Comparison.PercentageChange = int(math.Floor(pct + 0.5))
	}
	switch {
	case difference > 0:
		out.Comparison.Trend = "increase"
	case difference < 0:
		out.Comparison.Trend = "decrease"
	default:
		out.Comparison.Trend = "no_change"
	}

	return out, nil
}

type ReportUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserCalorieBreakdown struct {
	User                    *ReportUser `json:"user"`
	TotalCalories           int64       `json:"totalCalories"`
	EntryCount              int64       `json:"entryCount"`
	AverageCaloriesPerEntry int         `json:"averageCaloriesPerEntry"`
}

type AverageCaloriesReport struct {
	Period         ReportPeriod `json:"period"`
	OverallAverage struct {
		AverageCaloriesPerUser  int   `json:"averageCaloriesPerUser"`
		AverageCaloriesPerEntry int   `json:"averageCaloriesPerEntry"`
		TotalUsers              int   `json:"totalUsers"`
		TotalCalories           int64 `json:"totalCalories"`
	} `json:"overallAverage"`
	UserBreakdown []UserCalorieBreakdown `json:"userBreakdown"`
}

// AverageCalories groups the last 7 days of entries (by entryDateTime) by
// user. The overall average divides total calories by the number of users
// that contributed at least one entry, 0 when nobody did.
func (s *ReportService) AverageCalories(ctx context.Context) (*AverageCaloriesReport, error) {
	now := time.Now()
	last7Days := now.AddDate(0, 0, -7)

	type userAgg struct {
		UserID        string
		TotalCalories int64
		EntryCount    int64
		AvgCalories   float64
	}
	var aggs []userAgg
	err := s.db.WithContext(ctx).Model(&models.FoodEntry{}).
		Select("user_id", "SUM(calories) AS total_calories", "COUNT(*) AS entry_count", "AVG(calories) AS avg_calories").
		Where("entry_date_time BETWEEN ? AND ?", last7Days, now).
		Group("user_id").
		Order("user_id ASC").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(aggs))
	for _, a := range aggs {
		userIDs = append(userIDs, a.UserID)
	}

	userMap := map[string]*ReportUser{}
	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			userMap[u.ID] = &ReportUser{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}

	report := &AverageCaloriesReport{
		Period:        ReportPeriod{From: last7Days, To: now},
		UserBreakdown: make([]UserCalorieBreakdown, 0, len(aggs)),
	}

	var totalCalories, totalEntries int64
	for _, a := range aggs {
		totalCalories += a.TotalCalories
		totalEntries += a.EntryCount
		report.UserBreakdown = append(report.UserBreakdown, UserCalorieBreakdown{
			User:                    userMap[a.UserID],
			TotalCalories:           a.TotalCalories,
			EntryCount:              a.EntryCount,
			AverageCaloriesPerEntry: int(math.Round(a.AvgCalories)),
		})
	}

	report.OverallAverage.TotalUsers = len(aggs)
	report.OverallAverage.TotalCalories = totalCalories
	if len(aggs) > 0 {
		report.OverallAverage.AverageCaloriesPerUser = int(math.Round(float64(totalCalories) / float64(len(aggs))))
	}
	if totalEntries > 0 {
		report.OverallAverage.AverageCaloriesPerEntry = int(math.Round(float64(totalCalories) / float64(totalEntries)))
	}

	return report, nil
}

// countCreatedBetween counts entries by created_at. The upper bound is
// inclusive for the current window and exclusive for the previous one so
// the two weekly windows never double-count a row.
func (s *ReportService) countCreatedBetween(ctx context.Context, from, to time.Time, inclusive bool) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.FoodEntry{}).
		Where("created_at >= ?", from)
	if inclusive {
		q = q.Where("created_at <= ?", to)
	} else {
		q = q.Where("created_at < ?", to)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}
