package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/omercouncil/budget-portal/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{MinLevel: logger.LevelError}
}

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id,a2026,commit2026\n100,1,2\n200,3,4\n"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, testLogger())
	m, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 execution records, got %d", len(m))
	}
	if rec := m["200"]; rec.Actual2026 != 3 || rec.Committed2026 != 4 {
		t.Errorf("record 200 = %+v", rec)
	}
}

func TestFetcherFetchWindows1255(t *testing.T) {
	enc := charmap.Windows1255.NewEncoder()
	body, err := enc.Bytes([]byte("id,a2026,commit2026,מצב\n7,50,60\n"))
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, testLogger())
	m, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if rec := m["7"]; rec.Actual2026 != 50 || rec.Committed2026 != 60 {
		t.Errorf("record 7 = %+v", rec)
	}
}

func TestFetcherFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, testLogger())
	if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrFeedUnavailable) {
		t.Errorf("expected ErrFeedUnavailable, got %v", err)
	}
}

func TestFetcherFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	f := NewFetcher(srv.URL, testLogger())
	if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrFeedUnavailable) {
		t.Errorf("expected ErrFeedUnavailable, got %v", err)
	}
}
