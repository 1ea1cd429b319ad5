// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/platelog/internal/models"
)

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the caller.
var ErrNotFound = errors.New("not found")

// EntryStore persists journal entries.
type EntryStore interface {
	// CreateEntry persists a new entry. entry.ID must already be set.
	CreateEntry(ctx context.Context, entry *models.FoodEntry) error

	// GetEntry retrieves one of userID's entries.
	// Returns ErrNotFound if it does not exist or belongs to someone else.
	GetEntry(ctx context.Context, userID, entryID string) (*models.FoodEntry, error)

	// DeleteEntry removes one of userID's entries.
	// Returns ErrNotFound if it does not exist or belongs to someone else.
	DeleteEntry(ctx context.Context, userID, entryID string) error

	// ListEntries returns userID's entries logged in [from, to), most recent first.
	ListEntries(ctx context.Context, userID string, from, to int64) ([]models.FoodEntry, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail and GetUserByID return nil, nil when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PreferenceStore persists per-user display settings.
type PreferenceStore interface {
	// GetPreferences returns ErrNotFound when the user never saved any.
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	PutPreferences(ctx context.Context, prefs *models.Preferences) error
}

// Store defines every storage operation the service layer needs.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	EntryStore
	UserStore
	PreferenceStore

	// Close releases any resources held by the store.
	Close() error
}
