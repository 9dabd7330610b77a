package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET request, got %s", r.Method)
		}
		w.Write([]byte("<html><body>resultat</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(WithRateLimit(1000))
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if !strings.Contains(body, "resultat") {
		t.Errorf("expected body to contain 'resultat', got %q", body)
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	t.Run("default user agent", func(t *testing.T) {
		f := NewFetcher(WithRateLimit(1000))
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Fetch() unexpected error: %v", err)
		}
		if gotUserAgent != DefaultUserAgent {
			t.Errorf("expected User-Agent %q, got %q", DefaultUserAgent, gotUserAgent)
		}
	})

	t.Run("custom user agent with contact", func(t *testing.T) {
		ua := "yh-monitor/1.0 (github.com/yh-monitor); contact: ops@example.org"
		f := NewFetcher(WithUserAgent(ua), WithRateLimit(1000))
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Fetch() unexpected error: %v", err)
		}
		if gotUserAgent != ua {
			t.Errorf("expected User-Agent %q, got %q", ua, gotUserAgent)
		}
	})
}

func TestFetch_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher(WithRateLimit(1000))
	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch() expected error for non-200 status, got nil")
	}
	if !strings.Contains(err.Error(), "unexpected status code: 503") {
		t.Errorf("expected status code error, got %v", err)
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(WithRateLimit(1000))
	_, err := f.Fetch(ctx, server.URL)
	if err == nil {
		t.Error("Fetch() expected error for canceled context, got nil")
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("för sent"))
	}))
	defer server.Close()

	f := NewFetcher(WithTimeout(50*time.Millisecond), WithRateLimit(1000))
	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Error("Fetch() expected timeout error, got nil")
	}
}
