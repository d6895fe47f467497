package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User rows come from seeding only; the public API never registers
// accounts. Token is the static bearer credential and never serializes.
type User struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Name              string    `json:"name"`
	Role              string    `gorm:"not null;default:'USER'" json:"role"`
	DailyCalorieLimit int       `gorm:"not null" json:"dailyCalorieLimit"`
	Token             string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EntryUser is the slimmed owner record joined onto food entries in
// admin listings; entries expose exactly these four user fields.
type EntryUser struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	DailyCalorieLimit int    `json:"dailyCalorieLimit"`
}

func (EntryUser) TableName() string { return "users" }
