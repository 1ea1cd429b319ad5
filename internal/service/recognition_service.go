package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/platelog/internal/metrics"
	"github.com/mmynk/platelog/internal/recognition"
	"github.com/mmynk/platelog/pkg/api"
)

// Ensure RecognitionService implements api.RecognitionServiceHandler
var _ api.RecognitionServiceHandler = (*RecognitionService)(nil)

// RecognitionService implements the Connect RecognitionService.
//
// Only the latest request per user and operation is honoured: a new
// Recognize call cancels the caller's pending one, which then fails with
// CodeAborted and its result is discarded.
type RecognitionService struct {
	recognizer *recognition.Recognizer
	tracker    *recognition.Tracker
	metrics    *metrics.Metrics
}

// NewRecognitionService wraps recognizer. m may be nil.
func NewRecognitionService(recognizer *recognition.Recognizer, m *metrics.Metrics) *RecognitionService {
	return &RecognitionService{
		recognizer: recognizer,
		tracker:    recognition.NewTracker(),
		metrics:    m,
	}
}

// Recognize identifies the food in an image.
func (s *RecognitionService) Recognize(ctx context.Context, req *connect.Request[api.RecognizeRequest]) (*connect.Response[api.RecognizeResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	img := toImage(req.Msg.Image)

	start := time.Now()
	ctx, finish := s.tracker.Begin(ctx, userID+"/recognize")
	s.metrics.SetRecognitionsInFlight(s.tracker.InFlight())
	food, err := s.recognizer.Recognize(ctx, img)
	err = finish(err)
	s.metrics.SetRecognitionsInFlight(s.tracker.InFlight())
	s.metrics.ObserveRecognition("recognize", outcome(err), time.Since(start))
	if err != nil {
		slog.Warn("Recognition failed", "user_id", userID, "filename", img.Filename, "error", err)
		return nil, recognitionError(err)
	}

	slog.Info("Food recognized",
		"user_id", userID,
		"filename", img.Filename,
		"food", food.Name,
		"confidence", food.Confidence,
	)
	return connect.NewResponse(&api.RecognizeResponse{Food: toAPIFood(food)}), nil
}

// SuggestAlternatives returns up to three other candidates for an image.
func (s *RecognitionService) SuggestAlternatives(ctx context.Context, req *connect.Request[api.SuggestAlternativesRequest]) (*connect.Response[api.SuggestAlternativesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	img := toImage(req.Msg.Image)

	start := time.Now()
	ctx, finish := s.tracker.Begin(ctx, userID+"/suggest")
	s.metrics.SetRecognitionsInFlight(s.tracker.InFlight())
	foods, err := s.recognizer.SuggestAlternatives(ctx, img)
	err = finish(err)
	s.metrics.SetRecognitionsInFlight(s.tracker.InFlight())
	s.metrics.ObserveRecognition("suggest", outcome(err), time.Since(start))
	if err != nil {
		slog.Warn("Suggestions failed", "user_id", userID, "filename", img.Filename, "error", err)
		return nil, recognitionError(err)
	}

	out := make([]*api.RecognizedFood, len(foods))
	for i, f := range foods {
		out[i] = toAPIFood(f)
	}
	slog.Info("Suggestions ready", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.SuggestAlternativesResponse{Foods: out}), nil
}

func toImage(img *api.Image) recognition.Image {
	if img == nil {
		return recognition.Image{}
	}
	return recognition.Image{
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Data:        img.Data,
	}
}

func toAPIFood(f recognition.Food) *api.RecognizedFood {
	return &api.RecognizedFood{
		Name:       f.Name,
		Confidence: f.Confidence,
		Nutrition:  toAPINutrition(f.Nutrition),
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, recognition.ErrStale):
		return "stale"
	case errors.Is(err, recognition.ErrUnreadableImage):
		return "unreadable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "failed"
	}
}

// recognitionError maps recognizer errors onto Connect codes. Every one of
// them is recoverable: the client can retry or fall back to manual entry.
func recognitionError(err error) error {
	switch {
	case errors.Is(err, recognition.ErrStale):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, recognition.ErrUnreadableImage):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, recognition.ErrRecognitionFailed):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
