package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/platelog/internal/auth"
	"github.com/mmynk/platelog/internal/middleware"
	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/nutrition"
	"github.com/mmynk/platelog/internal/storage"
	"github.com/mmynk/platelog/pkg/api"
)

const dateLayout = "2006-01-02"

// requireUser returns the authenticated user ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// storageError maps a storage failure onto a Connect code.
func storageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// dayBounds resolves date (YYYY-MM-DD, empty for today) to [from, to) Unix
// seconds in loc.
func dayBounds(date string, now time.Time, loc *time.Location) (string, int64, int64, error) {
	var day time.Time
	if date == "" {
		n := now.In(loc)
		day = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	} else {
		d, err := time.ParseInLocation(dateLayout, date, loc)
		if err != nil {
			return "", 0, 0, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
		day = d
	}
	return day.Format(dateLayout), day.Unix(), day.AddDate(0, 0, 1).Unix(), nil
}

func toAPINutrition(r nutrition.Record) api.Nutrition {
	return api.Nutrition{
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
		Fiber:    r.Fiber,
		Sugar:    r.Sugar,
	}
}

func fromAPINutrition(n *api.Nutrition) *nutrition.Record {
	if n == nil {
		return nil
	}
	return &nutrition.Record{
		Calories: n.Calories,
		Protein:  n.Protein,
		Carbs:    n.Carbs,
		Fat:      n.Fat,
		Fiber:    n.Fiber,
		Sugar:    n.Sugar,
	}
}

func toAPIEntry(e models.FoodEntry, loc *time.Location) *api.Entry {
	return &api.Entry{
		ID:        e.ID,
		Name:      e.Name,
		ImageURL:  e.ImageURL,
		MealType:  string(e.MealType),
		Nutrition: toAPINutrition(e.Nutrition),
		LoggedAt:  timestamppb.New(time.Unix(e.LoggedAt, 0)),
		Label:     e.Label(loc),
	}
}

func toAPITotals(t nutrition.DailyTotals) *api.DailyTotals {
	return &api.DailyTotals{
		Nutrition: toAPINutrition(t.Record),
		MealCount: t.MealCount,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   timestamppb.New(time.Unix(u.CreatedAt, 0)),
	}
}
