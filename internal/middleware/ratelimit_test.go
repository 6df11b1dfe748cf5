package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"awards-api/internal/config"
)

func voteRequest(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/votes", nil)
	req.Header.Set("X-Real-IP", ip)
	return req
}

func TestVoteLimiterPerMinute(t *testing.T) {
	vl := NewVoteLimiter(&config.RateLimitConfig{
		Enabled:        true,
		VotesPerMinute: 2,
		VotesPerDay:    100,
	})

	handler := vl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, voteRequest("10.0.0.1"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("Request %d should pass, got status %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Third request in a minute should be limited, got status %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Limited response should carry Retry-After")
	}
}

func TestVoteLimiterPerDay(t *testing.T) {
	vl := NewVoteLimiter(&config.RateLimitConfig{
		Enabled:        true,
		VotesPerMinute: 100,
		VotesPerDay:    3,
	})

	handler := vl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, voteRequest("10.0.0.2"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("Request %d should pass, got status %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.2"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Fourth request in a day should be limited, got status %d", rec.Code)
	}
}

func TestVoteLimiterSeparateClients(t *testing.T) {
	vl := NewVoteLimiter(&config.RateLimitConfig{
		Enabled:        true,
		VotesPerMinute: 1,
		VotesPerDay:    10,
	})

	handler := vl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.3"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("First client should pass, got status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.4"))
	if rec.Code != http.StatusCreated {
		t.Errorf("Second client should not share the first client's window, got status %d", rec.Code)
	}
}

func TestVoteLimiterDisabled(t *testing.T) {
	vl := NewVoteLimiter(&config.RateLimitConfig{
		Enabled:        false,
		VotesPerMinute: 1,
		VotesPerDay:    1,
	})

	handler := vl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, voteRequest("10.0.0.5"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("Disabled limiter should pass everything, got status %d", rec.Code)
		}
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enabled:        true,
		GlobalRequests: 1,
		GlobalDuration: 10 * time.Millisecond,
	})

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.6"))
	if rec.Code != http.StatusOK {
		t.Fatalf("First request should pass, got status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.6"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Second immediate request should be limited, got status %d", rec.Code)
	}

	time.Sleep(15 * time.Millisecond)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, voteRequest("10.0.0.6"))
	if rec.Code != http.StatusOK {
		t.Errorf("Request after the window should pass, got status %d", rec.Code)
	}
}

func TestGetIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := getIP(req); got != "192.0.2.1:1234" {
		t.Errorf("Expected RemoteAddr fallback, got %s", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.7")
	if got := getIP(req); got != "203.0.113.7" {
		t.Errorf("Expected X-Real-IP, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	if got := getIP(req); got != "198.51.100.9" {
		t.Errorf("Expected X-Forwarded-For to win, got %s", got)
	}
}
