package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/uaite/food-tracker-api/middlewares"
	"github.com/uaite/food-tracker-api/services"
	"github.com/uaite/food-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FoodEntryController struct {
	svc *services.FoodEntryService
}

func NewFoodEntryController(svc *services.FoodEntryService) *FoodEntryController {
	return &FoodEntryController{svc: svc}
}

// List answers a page of entries, newest first. Admins may pass
// allUsers=true to widen the scope to everyone.
func (ctrl *FoodEntryController) List(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	allUsers := c.Query("allUsers") == "true"
	if allUsers && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required to view all users data"})
		return
	}

	params := services.ListEntriesParams{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 50),
		AllUsers: allUsers,
	}

	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	params.From = from
	params.To = to

	entries, total, err := ctrl.svc.List(c.Request.Context(), user, params)
	if err != nil {
		utils.Zlog.Error("list food entries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get food entries"})
		return
	}

	pages := (total + int64(params.Limit) - 1) / int64(params.Limit)
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"pagination": gin.H{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

type createFoodEntryRequest struct {
	FoodName      string    `json:"foodName" binding:"required,min=1,max=100"`
	Calories      int       `json:"calories" binding:"required,min=1,max=10000"`
	MealID        string    `json:"mealId" binding:"required"`
	EntryDateTime time.Time `json:"entryDateTime" binding:"required"`
}

func (ctrl *FoodEntryController) Create(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body createFoodEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := ctrl.svc.Create(c.Request.Context(), user.ID, services.CreateEntryInput{
		FoodName:      body.FoodName,
		Calories:      body.Calories,
		MealID:        body.MealID,
		EntryDateTime: body.EntryDateTime,
	})
	if err != nil {
		respondEntryError(c, err, "Failed to create food entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

type updateFoodEntryRequest struct {
	FoodName      *string    `json:"foodName" binding:"omitempty,min=1,max=100"`
	Calories      *int       `json:"calories" binding:"omitempty,min=1,max=10000"`
	MealID        *string    `json:"mealId" binding:"omitempty"`
	EntryDateTime *time.Time `json:"entryDateTime" binding:"omitempty"`
}

func (ctrl *FoodEntryController) Update(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body updateFoodEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := ctrl.svc.Update(c.Request.Context(), user, c.Param("id"), services.UpdateEntryInput{
		FoodName:      body.FoodName,
		Calories:      body.Calories,
		MealID:        body.MealID,
		EntryDateTime: body.EntryDateTime,
	})
	if err != nil {
		respondEntryError(c, err, "Failed to update food entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (ctrl *FoodEntryController) Delete(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := ctrl.svc.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondEntryError(c, err, "Failed to delete food entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food entry deleted successfully"})
}

// DailyTotals answers today's running total when no range is given, or a
// per-day calorie map over [from, to]. A half-open range is an error.
func (ctrl *FoodEntryController) DailyTotals(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fromParam := c.Query("from")
	toParam := c.Query("to")

	if fromParam == "" && toParam == "" {
		totals, err := ctrl.svc.TodayTotal(c.Request.Context(), user)
		if err != nil {
			utils.Zlog.Error("daily totals failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get daily totals"})
			return
		}
		c.JSON(http.StatusOK, totals)
		return
	}

	if fromParam == "" || toParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to dates are required when specifying date range"})
		return
	}

	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	totals, err := ctrl.svc.RangeTotals(c.Request.Context(), user, *from, *to)
	if err != nil {
		utils.Zlog.Error("daily totals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get daily totals"})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// parseRange reads the optional from/to query params. A bare date in "to"
// widens to the end of that day so the range stays inclusive. On a bad
// value it writes the 400 response and returns ok=false.
func parseRange(c *gin.Context) (from, to *time.Time, ok bool) {
	if v := c.Query("from"); v != "" {
		t, _, err := utils.ParseTimeParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date"})
			return nil, nil, false
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, dateOnly, err := utils.ParseTimeParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date"})
			return nil, nil, false
		}
		if dateOnly {
			t = utils.DayEnd(t)
		}
		to = &t
	}
	return from, to, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// respondEntryError maps food-entry service failures onto the HTTP error
// taxonomy; anything unrecognized logs and answers the generic 500.
func respondEntryError(c *gin.Context, err error, fallback string) {
	var limitErr *services.EntryLimitError
	switch {
	case errors.Is(err, services.ErrInvalidMeal):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal selected"})
	case errors.Is(err, services.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Food entry not found"})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": limitErr.Error()})
	default:
		utils.Zlog.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func respondBindingError(c *gin.Context, err error) {
	if details := utils.ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data", "details": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
}
