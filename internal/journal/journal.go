// Package journal holds the ordered list of a day's food entries and the
// rules for creating new ones.
package journal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/nutrition"
)

// MealFilter selects entries by meal type. The zero value matches all.
type MealFilter struct {
	meal models.MealType
}

// AllMeals matches every entry.
var AllMeals = MealFilter{}

// ParseMealFilter accepts "", "All" or a meal type name. "Snacks" is
// accepted as an alias for Snack.
func ParseMealFilter(s string) (MealFilter, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return AllMeals, nil
	}
	if strings.EqualFold(s, "snacks") {
		return MealFilter{meal: models.Snack}, nil
	}
	m, err := models.ParseMealType(s)
	if err != nil {
		return MealFilter{}, fmt.Errorf("%w: %v", ErrInvalidMealType, err)
	}
	return MealFilter{meal: m}, nil
}

// Match reports whether e passes the filter.
func (f MealFilter) Match(e models.FoodEntry) bool {
	return f.meal == "" || e.MealType == f.meal
}

func (f MealFilter) String() string {
	if f.meal == "" {
		return "All"
	}
	return string(f.meal)
}

// Journal is an ordered collection of entries, most recent first.
// It is not safe for concurrent use.
type Journal struct {
	entries []models.FoodEntry
}

// New builds a journal from entries in any order.
func New(entries []models.FoodEntry) *Journal {
	j := &Journal{entries: append([]models.FoodEntry(nil), entries...)}
	sort.SliceStable(j.entries, func(a, b int) bool {
		return j.entries[a].LoggedAt > j.entries[b].LoggedAt
	})
	return j
}

// Add puts e at the front of the journal.
func (j *Journal) Add(e models.FoodEntry) {
	j.entries = append([]models.FoodEntry{e}, j.entries...)
}

// Remove deletes the entry with id and reports whether it existed.
func (j *Journal) Remove(id string) bool {
	for i, e := range j.entries {
		if e.ID == id {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Entries returns a copy of all entries, most recent first.
func (j *Journal) Entries() []models.FoodEntry {
	return append([]models.FoodEntry(nil), j.entries...)
}

// Filter returns the entries matching f, most recent first.
func (j *Journal) Filter(f MealFilter) []models.FoodEntry {
	var out []models.FoodEntry
	for _, e := range j.entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Totals sums every entry in the journal, regardless of any filter.
func (j *Journal) Totals() nutrition.DailyTotals {
	records := make([]nutrition.Record, len(j.entries))
	for i, e := range j.entries {
		records[i] = e.Nutrition
	}
	return nutrition.Aggregate(records)
}
