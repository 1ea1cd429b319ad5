package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/platelog/internal/nutrition"
)

// MealType tags an entry with the meal it belongs to.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
)

// MealTypes lists every valid meal type in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseMealType matches s case-insensitively against the known meal types.
func ParseMealType(s string) (MealType, error) {
	for _, m := range MealTypes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown meal type %q", s)
}

// FoodEntry is one logged meal or snack.
type FoodEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// UserID is the owner of the entry.
	UserID string

	// Name is the display name, e.g. "Avocado Toast". Never blank.
	Name string

	// ImageURL points at the photo, or a placeholder when none was supplied.
	ImageURL string

	// Nutrition is the estimate for the whole portion.
	Nutrition nutrition.Record

	// MealType is the meal this entry was logged under.
	MealType MealType

	// LoggedAt is the Unix timestamp when the entry was created.
	LoggedAt int64
}

// Label renders the time-of-day and meal tag, e.g. "12:45 PM - Lunch".
func (e FoodEntry) Label(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%s - %s", time.Unix(e.LoggedAt, 0).In(loc).Format("3:04 PM"), e.MealType)
}
