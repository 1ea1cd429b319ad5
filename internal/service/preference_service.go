package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/storage"
	"github.com/mmynk/platelog/pkg/api"
)

// Ensure PreferenceService implements api.PreferenceServiceHandler
var _ api.PreferenceServiceHandler = (*PreferenceService)(nil)

// PreferenceService stores the theme flag per user. Reads fall back to the
// configured default without writing it; writes happen only on change.
type PreferenceService struct {
	store        storage.PreferenceStore
	defaultTheme models.Theme
}

// NewPreferenceService creates a PreferenceService.
func NewPreferenceService(store storage.PreferenceStore, defaultTheme models.Theme) *PreferenceService {
	if defaultTheme == "" {
		defaultTheme = models.ThemeLight
	}
	return &PreferenceService{store: store, defaultTheme: defaultTheme}
}

// GetPreferences returns the caller's preferences.
func (s *PreferenceService) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetPreferencesResponse{Preferences: toAPIPreferences(prefs)}), nil
}

// SetTheme changes the caller's theme.
func (s *PreferenceService) SetTheme(ctx context.Context, req *connect.Request[api.SetThemeRequest]) (*connect.Response[api.SetThemeResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := models.ParseTheme(req.Msg.Theme)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	prefs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs.Theme == theme && prefs.UpdatedAt != 0 {
		return connect.NewResponse(&api.SetThemeResponse{Preferences: toAPIPreferences(prefs)}), nil
	}

	prefs.Theme = theme
	prefs.UpdatedAt = time.Now().Unix()
	if err := s.store.PutPreferences(ctx, prefs); err != nil {
		slog.Error("SetTheme failed", "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Theme changed", "user_id", userID, "theme", theme)
	return connect.NewResponse(&api.SetThemeResponse{Preferences: toAPIPreferences(prefs)}), nil
}

func (s *PreferenceService) load(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Preferences{UserID: userID, Theme: s.defaultTheme}, nil
	}
	if err != nil {
		slog.Error("Loading preferences failed", "user_id", userID, "error", err)
		return nil, storageError(err)
	}
	return prefs, nil
}

func toAPIPreferences(p *models.Preferences) *api.Preferences {
	out := &api.Preferences{Theme: string(p.Theme)}
	if p.UpdatedAt != 0 {
		out.UpdatedAt = timestamppb.New(time.Unix(p.UpdatedAt, 0))
	}
	return out
}
