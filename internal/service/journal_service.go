package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/platelog/internal/journal"
	"github.com/mmynk/platelog/internal/metrics"
	"github.com/mmynk/platelog/internal/nutrition"
	"github.com/mmynk/platelog/internal/storage"
	"github.com/mmynk/platelog/pkg/api"
)

// Ensure JournalService implements api.JournalServiceHandler
var _ api.JournalServiceHandler = (*JournalService)(nil)

// DefaultCalorieGoal is the daily target used when none is configured.
const DefaultCalorieGoal = 2000

// JournalOptions tunes a JournalService. Zero fields take defaults.
type JournalOptions struct {
	Location    *time.Location
	CalorieGoal float64
	Guidelines  *nutrition.Guidelines
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

// JournalService implements the Connect JournalService.
type JournalService struct {
	store      storage.EntryStore
	loc        *time.Location
	goal       float64
	guidelines nutrition.Guidelines
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewJournalService creates a JournalService backed by store.
func NewJournalService(store storage.EntryStore, opts JournalOptions) *JournalService {
	s := &JournalService{
		store:      store,
		loc:        opts.Location,
		goal:       opts.CalorieGoal,
		guidelines: nutrition.DefaultGuidelines(),
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.goal == 0 {
		s.goal = DefaultCalorieGoal
	}
	if opts.Guidelines != nil {
		s.guidelines = *opts.Guidelines
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// AddEntry validates and logs a new food entry.
func (s *JournalService) AddEntry(ctx context.Context, req *connect.Request[api.AddEntryRequest]) (*connect.Response[api.AddEntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := journal.NewEntry(journal.EntryInput{
		UserID:    userID,
		Name:      req.Msg.Name,
		ImageURL:  req.Msg.ImageURL,
		MealType:  req.Msg.MealType,
		Nutrition: fromAPINutrition(req.Msg.Nutrition),
	}, s.now())
	if err != nil {
		slog.Warn("AddEntry rejected", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	date, day, err := s.loadDay(ctx, userID, s.dateOf(entry.LoggedAt))
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateEntry(ctx, &entry); err != nil {
		slog.Error("AddEntry failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	day.Add(entry)
	s.metrics.EntryLogged(string(entry.MealType))

	slog.Info("Entry added",
		"user_id", userID,
		"entry_id", entry.ID,
		"name", entry.Name,
		"meal_type", entry.MealType,
		"calories", entry.Nutrition.Calories,
		"day_calories", day.Totals().Calories,
	)

	return connect.NewResponse(&api.AddEntryResponse{
		Entry:  toAPIEntry(entry, s.loc),
		Date:   date,
		Totals: toAPITotals(day.Totals()),
	}), nil
}

// DeleteEntry removes one of the caller's entries.
func (s *JournalService) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.EntryID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("entry_id is required"))
	}

	entry, err := s.store.GetEntry(ctx, userID, req.Msg.EntryID)
	if err != nil {
		slog.Warn("DeleteEntry lookup failed", "user_id", userID, "entry_id", req.Msg.EntryID, "error", err)
		return nil, storageError(err)
	}
	date, day, err := s.loadDay(ctx, userID, s.dateOf(entry.LoggedAt))
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteEntry(ctx, userID, entry.ID); err != nil {
		slog.Warn("DeleteEntry failed", "user_id", userID, "entry_id", entry.ID, "error", err)
		return nil, storageError(err)
	}
	day.Remove(entry.ID)
	s.metrics.EntryDeleted()

	slog.Info("Entry removed",
		"user_id", userID,
		"entry_id", entry.ID,
		"name", entry.Name,
		"meal_type", entry.MealType,
	)
	return connect.NewResponse(&api.DeleteEntryResponse{
		Date:   date,
		Totals: toAPITotals(day.Totals()),
	}), nil
}

// ListEntries returns a day's entries matching the meal filter, most recent
// first, with totals for the whole day.
func (s *JournalService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := journal.ParseMealFilter(req.Msg.MealFilter)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	date, day, err := s.loadDay(ctx, userID, req.Msg.Date)
	if err != nil {
		return nil, err
	}

	matched := day.Filter(filter)
	entries := make([]*api.Entry, len(matched))
	for i, e := range matched {
		entries[i] = toAPIEntry(e, s.loc)
	}

	slog.Debug("ListEntries",
		"user_id", userID,
		"date", date,
		"filter", filter.String(),
		"matched", len(entries),
		"total", day.Len(),
	)

	return connect.NewResponse(&api.ListEntriesResponse{
		Date:    date,
		Entries: entries,
		Totals:  toAPITotals(day.Totals()),
	}), nil
}

// GetDailySummary computes totals, macro shares, calorie progress and the
// guideline evaluation for a day.
func (s *JournalService) GetDailySummary(ctx context.Context, req *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.GetDailySummaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	date, day, err := s.loadDay(ctx, userID, req.Msg.Date)
	if err != nil {
		return nil, err
	}

	totals := day.Totals()
	macros := nutrition.MacroPercentages(totals.Protein, totals.Carbs, totals.Fat)
	progress := nutrition.CalorieProgress(totals.Calories, s.goal)
	eval := nutrition.Evaluate(totals, s.guidelines)

	return connect.NewResponse(&api.GetDailySummaryResponse{
		Date:   date,
		Totals: toAPITotals(totals),
		Macros: &api.MacroSplit{
			ProteinPct: macros.ProteinPct,
			CarbsPct:   macros.CarbsPct,
			FatPct:     macros.FatPct,
		},
		Calories: &api.CalorieProgress{
			Consumed:  progress.Consumed,
			Goal:      progress.Goal,
			Remaining: progress.Remaining,
			Percent:   progress.Percent,
		},
		Evaluation: &api.Evaluation{
			Calories: string(eval.Calories),
			Protein:  string(eval.Protein),
			Carbs:    string(eval.Carbs),
			Fat:      string(eval.Fat),
		},
	}), nil
}

// SeedDemo logs the sample day for a new user.
func (s *JournalService) SeedDemo(ctx context.Context, userID string) error {
	for _, e := range journal.DemoEntries(userID, s.now(), s.loc) {
		if err := s.store.CreateEntry(ctx, &e); err != nil {
			return fmt.Errorf("seed demo entry %q: %w", e.Name, err)
		}
	}
	slog.Info("Seeded demo entries", "user_id", userID)
	return nil
}

// dateOf returns the calendar day of a unix timestamp in the service location.
func (s *JournalService) dateOf(unix int64) string {
	return time.Unix(unix, 0).In(s.loc).Format(dateLayout)
}

// loadDay reads a user's entries for date into a Journal.
func (s *JournalService) loadDay(ctx context.Context, userID, date string) (string, *journal.Journal, error) {
	label, from, to, err := dayBounds(date, s.now(), s.loc)
	if err != nil {
		return "", nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	entries, err := s.store.ListEntries(ctx, userID, from, to)
	if err != nil {
		slog.Error("Loading day failed", "user_id", userID, "date", label, "error", err)
		if errors.Is(err, context.Canceled) {
			return "", nil, connect.NewError(connect.CodeCanceled, err)
		}
		return "", nil, storageError(err)
	}
	return label, journal.New(entries), nil
}
