package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/nutrition"
)

var (
	ErrNameRequired      = errors.New("food name is required")
	ErrInvalidMealType   = errors.New("meal type must be Breakfast, Lunch, Dinner or Snack")
	ErrNegativeNutrition = errors.New("nutrition values cannot be negative")
)

// PlaceholderImageURL is used for entries logged without a photo.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=600&auto=format&fit=crop&q=60&ixlib=rb-4.0.3"

// DefaultNutrition is the estimate used for manually named foods when no
// recognition result is available.
var DefaultNutrition = nutrition.Record{
	Calories: 350,
	Protein:  15,
	Carbs:    40,
	Fat:      12,
	Fiber:    3,
	Sugar:    5,
}

// EntryInput is what a user submits to log a food.
type EntryInput struct {
	UserID   string
	Name     string
	ImageURL string
	// MealType defaults to Breakfast when empty.
	MealType string
	// Nutrition defaults to DefaultNutrition when nil.
	Nutrition *nutrition.Record
}

// NewEntry validates in and builds an entry logged at now.
// On error no entry is produced.
func NewEntry(in EntryInput, now time.Time) (models.FoodEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.FoodEntry{}, ErrNameRequired
	}

	meal := models.Breakfast
	if in.MealType != "" {
		m, err := models.ParseMealType(in.MealType)
		if err != nil {
			return models.FoodEntry{}, fmt.Errorf("%w: %v", ErrInvalidMealType, err)
		}
		meal = m
	}

	rec := DefaultNutrition
	if in.Nutrition != nil {
		rec = *in.Nutrition
	}
	if rec.Negative() {
		return models.FoodEntry{}, ErrNegativeNutrition
	}

	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		image = PlaceholderImageURL
	}

	return models.FoodEntry{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Name:      name,
		ImageURL:  image,
		Nutrition: rec,
		MealType:  meal,
		LoggedAt:  now.Unix(),
	}, nil
}

// DemoEntries returns the sample day shown to new users: breakfast, lunch
// and dinner on the day of now, in the given location.
func DemoEntries(userID string, now time.Time, loc *time.Location) []models.FoodEntry {
	if loc == nil {
		loc = time.Local
	}
	day := now.In(loc)
	at := func(hour, minute int) int64 {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc).Unix()
	}

	samples := []struct {
		name  string
		image string
		rec   nutrition.Record
		meal  models.MealType
		at    int64
	}{
		{
			name:  "Avocado Toast",
			image: "https://images.unsplash.com/photo-1588137378633-dea1336ce1e2?w=600&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			rec:   nutrition.Record{Calories: 320, Protein: 12, Carbs: 30, Fat: 18, Fiber: 5, Sugar: 2},
			meal:  models.Breakfast,
			at:    at(8, 30),
		},
		{
			name:  "Chicken Salad",
			image: "https://images.unsplash.com/photo-1546793665-c74683f339c1?w=600&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			rec:   nutrition.Record{Calories: 450, Protein: 35, Carbs: 20, Fat: 22, Fiber: 4, Sugar: 3},
			meal:  models.Lunch,
			at:    at(12, 45),
		},
		{
			name:  "Salmon with Vegetables",
			image: "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=600&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
			rec:   nutrition.Record{Calories: 520, Protein: 42, Carbs: 18, Fat: 28, Fiber: 6, Sugar: 2},
			meal:  models.Dinner,
			at:    at(19, 15),
		},
	}

	out := make([]models.FoodEntry, len(samples))
	for i, s := range samples {
		out[i] = models.FoodEntry{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      s.name,
			ImageURL:  s.image,
			Nutrition: s.rec,
			MealType:  s.meal,
			LoggedAt:  s.at,
		}
	}
	return out
}
