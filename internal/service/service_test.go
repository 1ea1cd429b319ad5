package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/platelog/internal/middleware"
	"github.com/mmynk/platelog/internal/models"
	"github.com/mmynk/platelog/internal/recognition"
	"github.com/mmynk/platelog/internal/storage/sqlite"
	"github.com/mmynk/platelog/pkg/api"
)

// testNow is the fixed clock used by the journal service in tests.
var testNow = time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

type testClients struct {
	journal     *api.JournalServiceClient
	recognition *api.RecognitionServiceClient
	preferences *api.PreferenceServiceClient

	store          *sqlite.SQLiteStore
	user           *models.User
	journalSvc     *JournalService
	recognitionSvc *RecognitionService
}

// testAuthInterceptor returns a Connect interceptor that authenticates every
// call as user.
func testAuthInterceptor(user *models.User) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithUser(ctx, user.ID, user.Email), req)
		}
	}
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// setupTestServer creates a test server with journal, recognition and
// preference services backed by a temporary SQLite database.
func setupTestServer(t *testing.T, opts recognition.Options) *testClients {
	t.Helper()

	store := newTestStore(t)
	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	journalSvc := NewJournalService(store, JournalOptions{
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	})
	recognitionSvc := NewRecognitionService(recognition.New(opts), nil)
	prefSvc := NewPreferenceService(store, models.ThemeLight)

	authInterceptor := connect.WithInterceptors(testAuthInterceptor(user))
	mux := http.NewServeMux()
	mux.Handle(api.NewJournalServiceHandler(journalSvc, authInterceptor))
	mux.Handle(api.NewRecognitionServiceHandler(recognitionSvc, authInterceptor))
	mux.Handle(api.NewPreferenceServiceHandler(prefSvc, authInterceptor))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		journal:        api.NewJournalServiceClient(http.DefaultClient, server.URL),
		recognition:    api.NewRecognitionServiceClient(http.DefaultClient, server.URL),
		preferences:    api.NewPreferenceServiceClient(http.DefaultClient, server.URL),
		store:          store,
		user:           user,
		journalSvc:     journalSvc,
		recognitionSvc: recognitionSvc,
	}
}

// assertCode fails the test unless err is a Connect error with code want.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
