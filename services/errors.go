package services

import (
	"errors"
	"fmt"
)

// Failure classes the controllers translate into HTTP statuses. Anything
// a service returns outside this set is treated as an internal error.
var (
	ErrInvalidMeal       = errors.New("invalid meal selected")
	ErrMealNotFound      = errors.New("meal not found")
	ErrEntryNotFound     = errors.New("food entry not found")
	ErrDuplicateMealName = errors.New("a meal with this name already exists")
)

// EntryLimitError rejects a food entry that would push a user past a
// meal's per-day cap.
type EntryLimitError struct {
	MealName   string
	MaxEntries int
}

func (e *EntryLimitError) Error() string {
	return fmt.Sprintf("Maximum %d entries allowed for %s per day", e.MaxEntries, e.MealName)
}
