package service

import (
	"context"
	"math"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/platelog/internal/journal"
	"github.com/mmynk/platelog/internal/recognition"
	"github.com/mmynk/platelog/pkg/api"
)

var (
	avocadoToast = &api.Nutrition{Calories: 320, Protein: 12, Carbs: 30, Fat: 18, Fiber: 5, Sugar: 2}
	chickenSalad = &api.Nutrition{Calories: 450, Protein: 35, Carbs: 20, Fat: 22, Fiber: 4, Sugar: 3}
)

func addEntry(t *testing.T, c *testClients, name, meal string, n *api.Nutrition) *api.Entry {
	t.Helper()

	resp, err := c.journal.AddEntry(context.Background(), connect.NewRequest(&api.AddEntryRequest{
		Name:      name,
		MealType:  meal,
		Nutrition: n,
	}))
	if err != nil {
		t.Fatalf("AddEntry(%s) failed: %v", name, err)
	}
	return resp.Msg.Entry
}

func TestAddEntry(t *testing.T) {
	c := setupTestServer(t, recognition.Options{})

	tests := []struct {
		name         string
		req          *api.AddEntryRequest
		wantCode     connect.Code
		validateFunc func(t *testing.T, e *api.Entry)
	}{
		{
			name: "recognized food",
			req:  &api.AddEntryRequest{Name: "Avocado Toast", MealType: "Breakfast", Nutrition: avocadoToast},
			validateFunc: func(t *testing.T, e *api.Entry) {
				if e.ID == "" {
					t.Error("expected entry ID")
				}
				if e.Nutrition != *avocadoToast {
					t.Errorf("Nutrition = %+v, want %+v", e.Nutrition, *avocadoToast)
				}
				if e.Label != "1:00 PM - Breakfast" {
					t.Errorf("Label = %q", e.Label)
				}
				if !e.LoggedAt.AsTime().Equal(testNow) {
					t.Errorf("LoggedAt = %v, want %v", e.LoggedAt.AsTime(), testNow)
				}
			},
		},
		{
			name: "manual entry uses defaults",
			req:  &api.AddEntryRequest{Name: "Leftovers"},
			validateFunc: func(t *testing.T, e *api.Entry) {
				if e.MealType != "Breakfast" {
					t.Errorf("MealType = %q, want Breakfast", e.MealType)
				}
				if e.ImageURL != journal.PlaceholderImageURL {
					t.Errorf("ImageURL = %q, want placeholder", e.ImageURL)
				}
				if e.Nutrition.Calories != 350 {
					t.Errorf("Calories = %v, want 350", e.Nutrition.Calories)
				}
			},
		},
		{
			name:     "blank name",
			req:      &api.AddEntryRequest{Name: "  "},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "unknown meal type",
			req:      &api.AddEntryRequest{Name: "Toast", MealType: "Brunch"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "negative calories",
			req:      &api.AddEntryRequest{Name: "Toast", Nutrition: &api.Nutrition{Calories: -5}},
			wantCode: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.journal.AddEntry(context.Background(), connect.NewRequest(tt.req))
			if tt.wantCode != 0 {
				assertCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("AddEntry failed: %v", err)
			}
			tt.validateFunc(t, resp.Msg.Entry)
		})
	}

	// Rejected entries must not reach the journal.
	list, err := c.journal.ListEntries(context.Background(), connect.NewRequest(&api.ListEntriesRequest{}))
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(list.Msg.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(list.Msg.Entries))
	}
}

func TestAddEntry_ReturnsDayTotals(t *testing.T) {
	c := setupTestServer(t, recognition.Options{})
	ctx := context.Background()

	addEntry(t, c, "Avocado Toast", "Breakfast", avocadoToast)
	resp, err := c.journal.AddEntry(ctx, connect.NewRequest(&api.AddEntryRequest{
		Name:      "Chicken Salad",
		MealType:  "Lunch",
		Nutrition: chickenSalad,
	}))
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	want := api.Nutrition{Calories: 770, Protein: 47, Carbs: 50, Fat: 40, Fiber: 9, Sugar: 5}
	if resp.Msg.Date != "2026-03-14" {
		t.Errorf("Date = %q, want 2026-03-14", resp.Msg.Date)
	}
	if resp.Msg.Totals.MealCount != 2 || resp.Msg.Totals.Nutrition != want {
		t.Errorf("Totals = %+v, want %+v over 2 meals", resp.Msg.Totals, want)
	}
}

func TestListEntries(t *testing.T) {
	c := setupTestServer(t, recognition.Options{})
	ctx := context.Background()

	if err := c.journalSvc.SeedDemo(ctx, c.user.ID); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	apple := addEntry(t, c, "Apple", "Snack", &api.Nutrition{Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3, Fiber: 4, Sugar: 19})

	t.Run("all meals, newest first", func(t *testing.T) {
		resp, err := c.journal.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{}))
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		want := []string{"Salmon with Vegetables", "Apple", "Chicken Salad", "Avocado Toast"}
		if len(resp.Msg.Entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(resp.Msg.Entries))
		}
		for i, name := range want {
			if resp.Msg.Entries[i].Name != name {
				t.Errorf("entry %d = %q, want %q", i, resp.Msg.Entries[i].Name, name)
			}
		}
		if resp.Msg.Date != "2026-03-14" {
			t.Errorf("Date = %q, want 2026-03-14", resp.Msg.Date)
		}
		if resp.Msg.Totals.MealCount != 4 {
			t.Errorf("MealCount = %d, want 4", resp.Msg.Totals.MealCount)
		}
	})

	t.Run("filtered list keeps whole-day totals", func(t *testing.T) {
		resp, err := c.journal.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{MealFilter: "Snacks"}))
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(resp.Msg.Entries) != 1 || resp.Msg.Entries[0].ID != apple.ID {
			t.Fatalf("expected only the apple, got %d entries", len(resp.Msg.Entries))
		}
		if got := resp.Msg.Totals.Nutrition.Calories; got != 1385 {
			t.Errorf("Calories = %v, want 1385", got)
		}
	})

	t.Run("other day is empty", func(t *testing.T) {
		resp, err := c.journal.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{Date: "2026-03-13"}))
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(resp.Msg.Entries) != 0 || resp.Msg.Totals.MealCount != 0 {
			t.Errorf("expected empty day, got %d entries", len(resp.Msg.Entries))
		}
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := c.journal.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{MealFilter: "Brunch"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := c.journal.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{Date: "14/03/2026"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestDeleteEntry(t *testing.T) {
	c := setupTestServer(t, recognition.Options{})
	ctx := context.Background()

	toast := addEntry(t, c, "Avocado Toast", "Breakfast", avocadoToast)
	addEntry(t, c, "Chicken Salad", "Lunch", chickenSalad)

	del, err := c.journal.DeleteEntry(ctx, connect.NewRequest(&api.DeleteEntryRequest{EntryID: toast.ID}))
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if del.Msg.Date != "2026-03-14" || del.Msg.Totals.MealCount != 1 || del.Msg.Totals.Nutrition != *chickenSalad {
		t.Errorf("DeleteEntry totals = %s %+v, want the salad alone", del.Msg.Date, del.Msg.Totals)
	}

	resp, err := c.journal.GetDailySummary(ctx, connect.NewRequest(&api.GetDailySummaryRequest{}))
	if err != nil {
		t.Fatalf("GetDailySummary failed: %v", err)
	}
	if got := resp.Msg.Totals.Nutrition; got != *chickenSalad {
		t.Errorf("totals after delete = %+v, want %+v", got, *chickenSalad)
	}

	t.Run("already deleted", func(t *testing.T) {
		_, err := c.journal.DeleteEntry(ctx, connect.NewRequest(&api.DeleteEntryRequest{EntryID: toast.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := c.journal.DeleteEntry(ctx, connect.NewRequest(&api.DeleteEntryRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestGetDailySummary(t *testing.T) {
	tests := []struct {
		name         string
		entries      []*api.Nutrition
		wantTotals   api.Nutrition
		wantMacros   api.MacroSplit
		wantPercent  int
		wantRemain   float64
		wantCalories string
	}{
		{
			name:         "empty day",
			wantMacros:   api.MacroSplit{},
			wantRemain:   2000,
			wantCalories: "low",
		},
		{
			name:         "single breakfast",
			entries:      []*api.Nutrition{avocadoToast},
			wantTotals:   *avocadoToast,
			wantMacros:   api.MacroSplit{ProteinPct: 20, CarbsPct: 50, FatPct: 30},
			wantPercent:  16,
			wantRemain:   1680,
			wantCalories: "low",
		},
		{
			name:         "breakfast and lunch",
			entries:      []*api.Nutrition{avocadoToast, chickenSalad},
			wantTotals:   api.Nutrition{Calories: 770, Protein: 47, Carbs: 50, Fat: 40, Fiber: 9, Sugar: 5},
			wantMacros:   api.MacroSplit{ProteinPct: 34, CarbsPct: 36, FatPct: 29},
			wantPercent:  39,
			wantRemain:   1230,
			wantCalories: "low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestServer(t, recognition.Options{})
			for i, n := range tt.entries {
				addEntry(t, c, "item", []string{"Breakfast", "Lunch"}[i%2], n)
			}

			resp, err := c.journal.GetDailySummary(context.Background(), connect.NewRequest(&api.GetDailySummaryRequest{}))
			if err != nil {
				t.Fatalf("GetDailySummary failed: %v", err)
			}
			got := resp.Msg

			n := got.Totals.Nutrition
			for _, pair := range [][2]float64{
				{n.Calories, tt.wantTotals.Calories},
				{n.Protein, tt.wantTotals.Protein},
				{n.Carbs, tt.wantTotals.Carbs},
				{n.Fat, tt.wantTotals.Fat},
				{n.Fiber, tt.wantTotals.Fiber},
				{n.Sugar, tt.wantTotals.Sugar},
			} {
				if math.Abs(pair[0]-pair[1]) > 0.001 {
					t.Errorf("totals = %+v, want %+v", n, tt.wantTotals)
					break
				}
			}
			if got.Totals.MealCount != len(tt.entries) {
				t.Errorf("MealCount = %d, want %d", got.Totals.MealCount, len(tt.entries))
			}
			if *got.Macros != tt.wantMacros {
				t.Errorf("Macros = %+v, want %+v", *got.Macros, tt.wantMacros)
			}
			if got.Calories.Goal != 2000 || got.Calories.Percent != tt.wantPercent || got.Calories.Remaining != tt.wantRemain {
				t.Errorf("Calories = %+v", *got.Calories)
			}
			if got.Evaluation.Calories != tt.wantCalories {
				t.Errorf("Evaluation.Calories = %q, want %q", got.Evaluation.Calories, tt.wantCalories)
			}
		})
	}
}
