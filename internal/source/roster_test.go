package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRoster_StaticOnly(t *testing.T) {
	r := NewRoster([]string{"alice@example.com", "bob@example.com"}, "")
	got, err := r.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want the two static ids", got)
	}
}

func TestRoster_RemoteAppended(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["room1@example.com","room2@example.com"]`))
	}))
	defer srv.Close()

	r := NewRoster([]string{"alice@example.com"}, srv.URL)
	got, err := r.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %v, want static plus remote ids", got)
	}
	if got[0] != "alice@example.com" {
		t.Errorf("static ids should come first, got %v", got)
	}
}

func TestRoster_RemoteFailureFallsBackToStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewRoster([]string{"alice@example.com"}, srv.URL)
	got, err := r.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("static ids should absorb a remote failure: %v", err)
	}
	if len(got) != 1 || got[0] != "alice@example.com" {
		t.Fatalf("got %v, want the static list", got)
	}
}

func TestRoster_RemoteFailureWithoutStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewRoster(nil, srv.URL)
	if _, err := r.FetchRoster(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("got %v, want ErrFetch with nothing to fall back on", err)
	}
}

func TestRoster_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	r := NewRoster(nil, srv.URL)
	if _, err := r.FetchRoster(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("got %v, want ErrFetch for malformed body", err)
	}
}
