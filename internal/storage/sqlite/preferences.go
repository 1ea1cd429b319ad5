package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/storage"
)

// GetPreferences loads a user's saved preferences.
func (s *SQLiteStore) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs := &models.Preferences{UserID: userID}
	var theme string
	err := s.db.QueryRowContext(ctx,
		"SELECT theme, updated_at FROM preferences WHERE user_id = ?", userID,
	).Scan(&theme, &prefs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("preferences for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	prefs.Theme = models.Theme(theme)
	return prefs, nil
}

// PutPreferences inserts or replaces a user's preferences.
func (s *SQLiteStore) PutPreferences(ctx context.Context, prefs *models.Preferences) error {
	if prefs.UpdatedAt == 0 {
		prefs.UpdatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, theme, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		prefs.UserID, string(prefs.Theme), prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
