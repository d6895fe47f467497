package services

import (
	"context"
	"errors"
	"time"

	"github.com/uaite/food-tracker-api/models"
	"github.com/uaite/food-tracker-api/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FoodEntryService struct {
	db *gorm.DB
}

func NewFoodEntryService(db *gorm.DB) *FoodEntryService {
	return &FoodEntryService{db: db}
}

type ListEntriesParams struct {
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
	AllUsers bool // admin-only; caller checks the role
}

// List returns one page of entries, newest entryDateTime first, plus the
// unpaginated total. AllUsers widens the scope to every user and joins in
// the owning user record.
func (s *FoodEntryService) List(ctx context.Context, user models.User, p ListEntriesParams) ([]models.FoodEntry, int64, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 50
	}

	q := s.db.WithContext(ctx).Model(&models.FoodEntry{})
	if !p.AllUsers {
		q = q.Where("user_id = ?", user.ID)
	}
	if p.From != nil {
		q = q.Where("entry_date_time >= ?", *p.From)
	}
	if p.To != nil {
		q = q.Where("entry_date_time <= ?", *p.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	scope := q.Preload("Meal")
	if p.AllUsers {
		scope = scope.Preload("User")
	}

	var entries []models.FoodEntry
	err := scope.
		Order("entry_date_time DESC").
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

type CreateEntryInput struct {
	FoodName      string
	Calories      int
	MealID        string
	EntryDateTime time.Time
}

// Create runs the admission rule and persists the entry. The meal row is
// locked for the duration of the transaction, so two near-simultaneous
// requests at the cap boundary serialize instead of both observing the
// pre-insert count. Plain READ COMMITTED would let both slip under.
func (s *FoodEntryService) Create(ctx context.Context, userID string, in CreateEntryInput) (*models.FoodEntry, error) {
	var created models.FoodEntry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := lockedMealQuery(tx).First(&meal, "id = ?", in.MealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidMeal
			}
			return err
		}

		dayStart := utils.DayStart(in.EntryDateTime)
		dayEnd := utils.DayEnd(in.EntryDateTime)

		var count int64
		err := tx.Model(&models.FoodEntry{}).
			Where("user_id = ? AND meal_id = ?", userID, in.MealID).
			Where("entry_date_time BETWEEN ? AND ?", dayStart, dayEnd).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count >= int64(meal.MaxEntries) {
			return &EntryLimitError{MealName: meal.Name, MaxEntries: meal.MaxEntries}
		}

		created = models.FoodEntry{
			UserID:        userID,
			MealID:        in.MealID,
			FoodName:      in.FoodName,
			Calories:      in.Calories,
			EntryDateTime: in.EntryDateTime,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, created.ID)
}

type UpdateEntryInput struct {
	FoodName      *string
	Calories      *int
	MealID        *string
	EntryDateTime *time.Time
}

// Update applies a partial edit. Only the owner or an admin can see the
// entry; everyone else gets ErrEntryNotFound. A changed meal must exist,
// but the per-day cap is not re-checked on edits.
func (s *FoodEntryService) Update(ctx context.Context, user models.User, id string, in UpdateEntryInput) (*models.FoodEntry, error) {
	entry, err := s.findVisible(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if in.MealID != nil {
		var meal models.Meal
		if err := s.db.WithContext(ctx).First(&meal, "id = ?", *in.MealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidMeal
			}
			return nil, err
		}
	}

	updates := map[string]any{}
	if in.FoodName != nil {
		updates["food_name"] = *in.FoodName
	}
	if in.Calories != nil {
		updates["calories"] = *in.Calories
	}
	if in.MealID != nil {
		updates["meal_id"] = *in.MealID
	}
	if in.EntryDateTime != nil {
		updates["entry_date_time"] = *in.EntryDateTime
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.reload(ctx, entry.ID)
}

// Delete removes an entry under the same visibility rule as Update.
func (s *FoodEntryService) Delete(ctx context.Context, user models.User, id string) error {
	entry, err := s.findVisible(ctx, user, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(entry).Error
}

type DailyTotal struct {
	DailyCalorieLimit    int    `json:"dailyCalorieLimit"`
	CurrentTotalCalories int    `json:"currentTotalCalories"`
	Date                 string `json:"date"`
}

// TodayTotal sums the caller's calories for the current calendar day.
func (s *FoodEntryService) TodayTotal(ctx context.Context, user models.User) (*DailyTotal, error) {
	now := time.Now()

	var total int64
	err := s.db.WithContext(ctx).Model(&models.FoodEntry{}).
		Where("user_id = ?", user.ID).
		Where("entry_date_time BETWEEN ? AND ?", utils.DayStart(now), utils.DayEnd(now)).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error
	if err != nil {
		return nil, err
	}

	return &DailyTotal{
		DailyCalorieLimit:    user.DailyCalorieLimit,
		CurrentTotalCalories: int(total),
		Date:                 now.Format(utils.DateLayout),
	}, nil
}

type RangeTotals struct {
	DailyTotals       map[string]int `json:"dailyTotals"`
	DailyCalorieLimit int            `json:"dailyCalorieLimit"`
}

// RangeTotals buckets the caller's calories by calendar day over
// [from, to]. Days without entries are absent from the map.
func (s *FoodEntryService) RangeTotals(ctx context.Context, user models.User, from, to time.Time) (*RangeTotals, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Select("calories", "entry_date_time").
		Where("user_id = ?", user.ID).
		Where("entry_date_time BETWEEN ? AND ?", from, to).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	for _, e := range entries {
		day := e.EntryDateTime.Format(utils.DateLayout)
		totals[day] += e.Calories
	}

	return &RangeTotals{
		DailyTotals:       totals,
		DailyCalorieLimit: user.DailyCalorieLimit,
	}, nil
}

// lockedMealQuery scopes a meal lookup with SELECT ... FOR UPDATE. The
// admission check depends on it: holding the meal row blocks concurrent
// admissions against the same meal until the insert commits. sqlite (the
// test driver) has no row locks and drops the clause; it serializes
// writers itself.
func lockedMealQuery(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// findVisible resolves an entry id within the caller's visibility: admins
// see every entry, users only their own. Entries outside that scope look
// identical to missing ones.
func (s *FoodEntryService) findVisible(ctx context.Context, user models.User, id string) (*models.FoodEntry, error) {
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if !user.IsAdmin() {
		q = q.Where("user_id = ?", user.ID)
	}

	var entry models.FoodEntry
	if err := q.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *FoodEntryService) reload(ctx context.Context, id string) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.db.WithContext(ctx).
		Preload("Meal").
		Preload("User").
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
