package services

import (
	"context"
	"errors"

	"github.com/uaite/food-tracker-api/models"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

func (s *MealService) List(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).Order("name ASC").Find(&meals).Error
	return meals, err
}

type UpdateMealInput struct {
	Name       *string
	MaxEntries *int
}

// Update edits a meal's name and/or per-day cap. A name change that would
// collide with another meal is rejected and leaves both meals untouched.
func (s *MealService) Update(ctx context.Context, id string, in UpdateMealInput) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	if in.Name != nil && *in.Name != meal.Name {
		var dup int64
		err := s.db.WithContext(ctx).Model(&models.Meal{}).
			Where("name = ? AND id <> ?", *in.Name, id).
			Count(&dup).Error
		if err != nil {
			return nil, err
		}
		if dup > 0 {
			return nil, ErrDuplicateMealName
		}
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.MaxEntries != nil {
		updates["max_entries"] = *in.MaxEntries
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&meal).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}

	return &meal, nil
}
