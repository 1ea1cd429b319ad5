package service

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/platelog/internal/metrics"
	"github.com/mmynk/platelog/internal/middleware"
	"github.com/mmynk/platelog/internal/recognition"
	"github.com/mmynk/platelog/pkg/api"
)

var photo = &api.Image{Filename: "plate.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff, 0xe0}}

func TestRecognize(t *testing.T) {
	c := setupTestServer(t, recognition.Options{Delay: 10 * time.Millisecond})

	known := make(map[string]recognition.Food)
	for _, f := range recognition.DefaultTable() {
		known[f.Name] = f
	}

	resp, err := c.recognition.Recognize(context.Background(), connect.NewRequest(&api.RecognizeRequest{Image: photo}))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	food := resp.Msg.Food
	want, ok := known[food.Name]
	if !ok {
		t.Fatalf("Recognize returned %q, which is not in the table", food.Name)
	}
	if food.Confidence != want.Confidence || food.Nutrition.Calories != want.Nutrition.Calories {
		t.Errorf("Recognize = %+v, want %+v", food, want)
	}
}

func TestRecognize_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opts     recognition.Options
		image    *api.Image
		wantCode connect.Code
	}{
		{
			name:     "missing image",
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "empty image data",
			image:    &api.Image{Filename: "empty.jpg"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "simulated failure",
			opts:     recognition.Options{FailureRate: 1},
			image:    photo,
			wantCode: connect.CodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestServer(t, tt.opts)
			_, err := c.recognition.Recognize(context.Background(), connect.NewRequest(&api.RecognizeRequest{Image: tt.image}))
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestRecognize_LatestRequestWins(t *testing.T) {
	c := setupTestServer(t, recognition.Options{Delay: 300 * time.Millisecond})
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = c.recognition.Recognize(ctx, connect.NewRequest(&api.RecognizeRequest{Image: photo}))
	}()

	deadline := time.Now().Add(2 * time.Second)
	for c.recognitionSvc.tracker.InFlight() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first request never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := c.recognition.Recognize(ctx, connect.NewRequest(&api.RecognizeRequest{Image: photo}))
	wg.Wait()

	if err != nil {
		t.Fatalf("latest Recognize failed: %v", err)
	}
	if resp.Msg.Food == nil {
		t.Fatal("expected a food from the latest request")
	}
	assertCode(t, firstErr, connect.CodeAborted)

	if n := c.recognitionSvc.tracker.InFlight(); n != 0 {
		t.Errorf("InFlight() = %d after both calls returned", n)
	}
}

func TestSuggestAlternatives(t *testing.T) {
	c := setupTestServer(t, recognition.Options{})

	resp, err := c.recognition.SuggestAlternatives(context.Background(), connect.NewRequest(&api.SuggestAlternativesRequest{Image: photo}))
	if err != nil {
		t.Fatalf("SuggestAlternatives failed: %v", err)
	}

	foods := resp.Msg.Foods
	if len(foods) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(foods))
	}
	seen := make(map[string]bool)
	for _, f := range foods {
		if seen[f.Name] {
			t.Errorf("duplicate suggestion %q", f.Name)
		}
		seen[f.Name] = true
	}

	// A suggestion request does not supersede a recognition request.
	if _, err := c.recognition.Recognize(context.Background(), connect.NewRequest(&api.RecognizeRequest{Image: photo})); err != nil {
		t.Errorf("Recognize after SuggestAlternatives failed: %v", err)
	}
}

func TestRecognize_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	svc := NewRecognitionService(recognition.New(recognition.Options{}), m)
	ctx := middleware.WithUser(context.Background(), "u1", "u1@example.com")

	if _, err := svc.Recognize(ctx, connect.NewRequest(&api.RecognizeRequest{Image: photo})); err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	_, err := svc.Recognize(ctx, connect.NewRequest(&api.RecognizeRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, line := range []string{
		"platelog_recognitions_in_flight 0",
		`platelog_recognitions_total{operation="recognize",outcome="ok"} 1`,
		`platelog_recognitions_total{operation="recognize",outcome="unreadable"} 1`,
	} {
		if !strings.Contains(string(body), line) {
			t.Errorf("/metrics output missing %q", line)
		}
	}
}
