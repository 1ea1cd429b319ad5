package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/platelog/internal/journal"
	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "Test User", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStore_Entries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com")
	bob := createUser(t, store, "bob@example.com")

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	from, to := day.Unix(), day.AddDate(0, 0, 1).Unix()

	demo := journal.DemoEntries(alice.ID, day, time.UTC)
	for i := range demo {
		if err := store.CreateEntry(ctx, &demo[i]); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	t.Run("ListEntries returns the day newest first", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, alice.ID, from, to)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(entries))
		}
		if entries[0].Name != "Salmon with Vegetables" || entries[2].Name != "Avocado Toast" {
			t.Errorf("Unexpected order: %s, %s, %s", entries[0].Name, entries[1].Name, entries[2].Name)
		}
	})

	t.Run("ListEntries excludes other days and users", func(t *testing.T) {
		tomorrow := &models.FoodEntry{
			UserID:   alice.ID,
			Name:     "Porridge",
			ImageURL: journal.PlaceholderImageURL,
			MealType: models.Breakfast,
			LoggedAt: to + 60,
		}
		if err := store.CreateEntry(ctx, tomorrow); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}

		entries, err := store.ListEntries(ctx, alice.ID, from, to)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("Expected 3 entries for the day, got %d", len(entries))
		}

		entries, err = store.ListEntries(ctx, bob.ID, from, to)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected no entries for bob, got %d", len(entries))
		}
	})

	t.Run("GetEntry round-trips nutrition", func(t *testing.T) {
		got, err := store.GetEntry(ctx, alice.ID, demo[1].ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if *got != demo[1] {
			t.Errorf("GetEntry = %+v, want %+v", *got, demo[1])
		}
	})

	t.Run("GetEntry hides other users' entries", func(t *testing.T) {
		_, err := store.GetEntry(ctx, bob.ID, demo[1].ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteEntry", func(t *testing.T) {
		if err := store.DeleteEntry(ctx, bob.ID, demo[0].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Deleting another user's entry: expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteEntry(ctx, alice.ID, demo[0].ID); err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
		if err := store.DeleteEntry(ctx, alice.ID, demo[0].ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Second delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateEntry fills ID and timestamp", func(t *testing.T) {
		entry := &models.FoodEntry{
			UserID:   alice.ID,
			Name:     "Apple",
			ImageURL: journal.PlaceholderImageURL,
			MealType: models.Snack,
		}
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		if entry.ID == "" {
			t.Error("Expected entry ID to be generated")
		}
		if entry.LoggedAt == 0 {
			t.Error("Expected LoggedAt to be set")
		}
	})

	t.Run("CreateEntry requires a known user", func(t *testing.T) {
		entry := &models.FoodEntry{UserID: "ghost", Name: "Apple", MealType: models.Snack}
		if err := store.CreateEntry(ctx, entry); err == nil {
			t.Error("Expected foreign key violation, got nil")
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, " Carol@Example.com ")

	got, err := store.GetUserByEmail(ctx, "carol@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("GetUserByEmail = %+v, want user %s", got, user.ID)
	}

	got, err = store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got == nil || got.Email != "carol@example.com" {
		t.Errorf("GetUserByID = %+v, want lower-cased email", got)
	}

	missing, err := store.GetUserByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetUserByID(missing) = %+v, %v; want nil, nil", missing, err)
	}

	dup := models.NewUser("carol@example.com", "Other", "hash")
	if err := store.CreateUser(ctx, dup); err == nil {
		t.Error("Expected duplicate email to fail")
	}
}

func TestSQLiteStore_Preferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, store, "dave@example.com")

	if _, err := store.GetPreferences(ctx, user.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before first write, got %v", err)
	}

	for _, theme := range []models.Theme{models.ThemeDark, models.ThemeLight} {
		if err := store.PutPreferences(ctx, &models.Preferences{UserID: user.ID, Theme: theme}); err != nil {
			t.Fatalf("PutPreferences(%s) failed: %v", theme, err)
		}
		prefs, err := store.GetPreferences(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetPreferences failed: %v", err)
		}
		if prefs.Theme != theme {
			t.Errorf("Theme = %s, want %s", prefs.Theme, theme)
		}
		if prefs.UpdatedAt == 0 {
			t.Error("Expected UpdatedAt to be set")
		}
	}
}
