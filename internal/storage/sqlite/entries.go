package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/storage"
)

const entryColumns = `id, user_id, name, image_url, meal_type,
	calories, protein, carbs, fat, fiber, sugar, logged_at`

// CreateEntry persists a new journal entry.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.FoodEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LoggedAt == 0 {
		entry.LoggedAt = time.Now().Unix()
	}

	n := entry.Nutrition
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Name, entry.ImageURL, string(entry.MealType),
		n.Calories, n.Protein, n.Carbs, n.Fat, n.Fiber, n.Sugar, entry.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// GetEntry retrieves one of the user's entries by ID.
func (s *SQLiteStore) GetEntry(ctx context.Context, userID, entryID string) (*models.FoodEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ? AND user_id = ?`,
		entryID, userID,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", entryID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes one of the user's entries.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, userID, entryID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM entries WHERE id = ? AND user_id = ?",
		entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", entryID, storage.ErrNotFound)
	}
	return nil
}

// ListEntries returns the user's entries logged in [from, to), newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, userID string, from, to int64) ([]models.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE user_id = ? AND logged_at >= ? AND logged_at < ?
		 ORDER BY logged_at DESC, rowid DESC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.FoodEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.FoodEntry, error) {
	var (
		e    models.FoodEntry
		meal string
	)
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &e.ImageURL, &meal,
		&e.Nutrition.Calories, &e.Nutrition.Protein, &e.Nutrition.Carbs,
		&e.Nutrition.Fat, &e.Nutrition.Fiber, &e.Nutrition.Sugar,
		&e.LoggedAt,
	)
	if err != nil {
		return nil, err
	}
	e.MealType = models.MealType(meal)
	return &e, nil
}
