package media_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"propcomfy/internal/adapters/media"
	"propcomfy/internal/domain"
)

func TestClient_GetMedia_RetriesThenSuccess(t *testing.T) {
	var hits int32
	var path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(503)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{"media": []any{"a.jpg"}})
		}
	}))
	defer ts.Close()

	cl, err := media.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.GetMedia(ctx, "Victoria Island")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if items, ok := got["media"].([]any); !ok || len(items) != 1 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
	if path != "/media/Victoria%20Island.json" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestClient_GetMedia_FallsBackThen404(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	cl, _ := media.New(ts.URL, "k", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.GetMedia(ctx, "Ajah")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if hits != 2 {
		t.Fatalf("expected both candidates to be tried, got %d", hits)
	}
}

func TestClient_GetMedia_Forbidden(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	cl, _ := media.New(ts.URL, "wrong", 100)
	if _, err := cl.GetMedia(context.Background(), "Lekki"); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := media.New(" ", "", 1); err == nil {
		t.Fatalf("expected error for empty base")
	}
}

func TestClient_GetMedia_ClientErrorNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad city", http.StatusBadRequest)
	}))
	defer ts.Close()

	cl, _ := media.New(ts.URL, "", 100)
	_, err := cl.GetMedia(context.Background(), "Lekki")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected a bad status error, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("a 400 must not be retried, got %d calls", hits)
	}
}

func TestClient_GetMedia_HonoursRetryAfter(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"media":[]}`))
	}))
	defer ts.Close()

	cl, _ := media.New(ts.URL, "", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if _, err := cl.GetMedia(ctx, "Ajah"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if waited := time.Since(start); waited < time.Second {
		t.Fatalf("expected the Retry-After delay to be honoured, waited %v", waited)
	}
	if hits != 2 {
		t.Fatalf("expected 2 calls, got %d", hits)
	}
}

func TestClient_GetMedia_GivesUpAfterRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cl, _ := media.New(ts.URL, "", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := cl.GetMedia(ctx, "Ajah"); err == nil {
		t.Fatalf("expected an error after exhausting retries")
	}
	if hits != 4 {
		t.Fatalf("expected 1 attempt plus 3 retries, got %d", hits)
	}
}
