package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One Meal slot (Breakfast/Lunch/Dinner/Snack). MaxEntries caps how many
// food entries a user may log against the slot per calendar day.
type Meal struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	MaxEntries int       `gorm:"not null" json:"maxEntries"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
