package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodEntry is one logged food item. EntryDateTime is the moment the user
// says they ate it, distinct from the CreatedAt insertion time; the per-day
// cap and the daily totals bucket on EntryDateTime.
type FoodEntry struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;index;not null" json:"userId"`
	MealID        string    `gorm:"type:uuid;index;not null" json:"mealId"`
	FoodName      string    `gorm:"size:100;not null" json:"foodName"`
	Calories      int       `gorm:"not null" json:"calories"`
	EntryDateTime time.Time `gorm:"index;not null" json:"entryDateTime"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Meal *Meal      `gorm:"foreignKey:MealID" json:"meal,omitempty"`
	User *EntryUser `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (e *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
