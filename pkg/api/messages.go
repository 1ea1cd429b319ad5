package api

import "google.golang.org/protobuf/types/known/timestamppb"

// Nutrition is a per-item or per-day nutrition record.
// Calories are kcal, the rest grams.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// Entry is a logged food as shown in the journal.
type Entry struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	ImageURL  string                 `json:"imageUrl"`
	MealType  string                 `json:"mealType"`
	Nutrition Nutrition              `json:"nutrition"`
	LoggedAt  *timestamppb.Timestamp `json:"loggedAt"`
	// Label is the display timestamp, e.g. "8:30 AM - Breakfast".
	Label string `json:"timestamp"`
}

type DailyTotals struct {
	Nutrition Nutrition `json:"nutrition"`
	MealCount int       `json:"mealCount"`
}

type MacroSplit struct {
	ProteinPct int `json:"proteinPercentage"`
	CarbsPct   int `json:"carbsPercentage"`
	FatPct     int `json:"fatPercentage"`
}

type CalorieProgress struct {
	Consumed  float64 `json:"consumed"`
	Goal      float64 `json:"goal"`
	Remaining float64 `json:"remaining"`
	Percent   int     `json:"percent"`
}

// Evaluation holds "low", "good" or "high" per tracked value.
type Evaluation struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Journal

type AddEntryRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	MealType string `json:"mealType,omitempty"`
	// Nutrition is usually copied from a recognition result. When nil a
	// default estimate is used.
	Nutrition *Nutrition `json:"nutrition,omitempty"`
}

// AddEntryResponse carries the new entry and its day's totals including it.
type AddEntryResponse struct {
	Entry  *Entry       `json:"entry"`
	Date   string       `json:"date"`
	Totals *DailyTotals `json:"totals"`
}

type DeleteEntryRequest struct {
	EntryID string `json:"entryId"`
}

// DeleteEntryResponse carries the totals of the entry's day after removal.
type DeleteEntryResponse struct {
	Date   string       `json:"date"`
	Totals *DailyTotals `json:"totals"`
}

// ListEntriesRequest selects a day (YYYY-MM-DD, empty for today) and a meal
// filter ("All", "Breakfast", "Lunch", "Dinner", "Snack").
type ListEntriesRequest struct {
	Date       string `json:"date,omitempty"`
	MealFilter string `json:"mealFilter,omitempty"`
}

type ListEntriesResponse struct {
	Date    string   `json:"date"`
	Entries []*Entry `json:"entries"`
	// Totals always cover the whole day, whatever the filter.
	Totals *DailyTotals `json:"totals"`
}

type GetDailySummaryRequest struct {
	Date string `json:"date,omitempty"`
}

type GetDailySummaryResponse struct {
	Date       string           `json:"date"`
	Totals     *DailyTotals     `json:"totals"`
	Macros     *MacroSplit      `json:"macros"`
	Calories   *CalorieProgress `json:"calories"`
	Evaluation *Evaluation      `json:"evaluation"`
}

// Recognition

type Image struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data"`
}

type RecognizedFood struct {
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Nutrition  Nutrition `json:"nutritionInfo"`
}

type RecognizeRequest struct {
	Image *Image `json:"image"`
}

type RecognizeResponse struct {
	Food *RecognizedFood `json:"food"`
}

type SuggestAlternativesRequest struct {
	Image *Image `json:"image"`
}

type SuggestAlternativesResponse struct {
	Foods []*RecognizedFood `json:"foods"`
}

// Auth

type User struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"displayName"`
	CreatedAt   *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Preferences

type Preferences struct {
	Theme     string                 `json:"theme"`
	UpdatedAt *timestamppb.Timestamp `json:"updatedAt,omitempty"`
}

type GetPreferencesRequest struct{}

type GetPreferencesResponse struct {
	Preferences *Preferences `json:"preferences"`
}

type SetThemeRequest struct {
	Theme string `json:"theme"`
}

type SetThemeResponse struct {
	Preferences *Preferences `json:"preferences"`
}
