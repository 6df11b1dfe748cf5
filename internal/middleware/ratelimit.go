package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"awards-api/internal/config"
)

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	enabled  bool
	requests int
	duration time.Duration
	visitors map[string]*visitor
	mu       sync.RWMutex
}

type visitor struct {
	lastSeen time.Time
	tokens   int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		enabled:  cfg.Enabled,
		requests: cfg.GlobalRequests,
		duration: cfg.GlobalDuration,
		visitors: make(map[string]*visitor),
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

// Limit rate limits requests based on IP address
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip := getIP(r)

		rl.mu.Lock()
		v, exists := rl.visitors[ip]
		if !exists {
			rl.visitors[ip] = &visitor{
				lastSeen: time.Now(),
				tokens:   rl.requests - 1,
			}
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		// Refill tokens based on time passed
		now := time.Now()
		elapsed := now.Sub(v.lastSeen)
		if elapsed >= rl.duration {
			v.tokens = rl.requests - 1
			v.lastSeen = now
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		if v.tokens > 0 {
			v.tokens--
			v.lastSeen = now
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		rl.mu.Unlock()

		respondRateLimited(w, v.lastSeen.Add(rl.duration))
	})
}

// cleanupVisitors removes old visitors from the map
func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(1 * time.Minute)

		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// voteWindow tracks one client's vote timestamps inside the day window
type voteWindow struct {
	timestamps []time.Time
}

// VoteLimiter caps votes per client IP on two windows at once, per minute
// and per day. Both caps must pass for the vote to proceed.
type VoteLimiter struct {
	enabled   bool
	perMinute int
	perDay    int
	clients   map[string]*voteWindow
	mu        sync.Mutex
}

// NewVoteLimiter creates a vote limiter
func NewVoteLimiter(cfg *config.RateLimitConfig) *VoteLimiter {
	vl := &VoteLimiter{
		enabled:   cfg.Enabled,
		perMinute: cfg.VotesPerMinute,
		perDay:    cfg.VotesPerDay,
		clients:   make(map[string]*voteWindow),
	}

	go vl.cleanupClients()

	return vl
}

// Limit enforces both vote caps for the client IP
func (vl *VoteLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !vl.enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip := getIP(r)
		now := time.Now()

		vl.mu.Lock()
		window, exists := vl.clients[ip]
		if !exists {
			window = &voteWindow{}
			vl.clients[ip] = window
		}

		// Drop timestamps older than the day window
		cutoff := now.Add(-24 * time.Hour)
		kept := window.timestamps[:0]
		for _, ts := range window.timestamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		window.timestamps = kept

		if len(window.timestamps) >= vl.perDay {
			resetAt := window.timestamps[0].Add(24 * time.Hour)
			vl.mu.Unlock()
			respondRateLimited(w, resetAt)
			return
		}

		minuteCutoff := now.Add(-time.Minute)
		inMinute := 0
		oldestInMinute := now
		for _, ts := range window.timestamps {
			if ts.After(minuteCutoff) {
				inMinute++
				if ts.Before(oldestInMinute) {
					oldestInMinute = ts
				}
			}
		}
		if inMinute >= vl.perMinute {
			resetAt := oldestInMinute.Add(time.Minute)
			vl.mu.Unlock()
			respondRateLimited(w, resetAt)
			return
		}

		window.timestamps = append(window.timestamps, now)
		vl.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// cleanupClients removes clients with no votes inside the day window
func (vl *VoteLimiter) cleanupClients() {
	for {
		time.Sleep(10 * time.Minute)

		cutoff := time.Now().Add(-24 * time.Hour)
		vl.mu.Lock()
		for ip, window := range vl.clients {
			stale := true
			for _, ts := range window.timestamps {
				if ts.After(cutoff) {
					stale = false
					break
				}
			}
			if stale {
				delete(vl.clients, ip)
			}
		}
		vl.mu.Unlock()
	}
}

// respondRateLimited writes the 429 envelope with the window reset time
func respondRateLimited(w http.ResponseWriter, resetAt time.Time) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(time.Until(resetAt).Seconds())+1))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":     "RATE_LIMITED",
			"message":  "Rate limit exceeded. Please try again later.",
			"reset_at": resetAt.UTC().Format(time.RFC3339),
		},
	})
}

// getIP gets the client IP address from the request
func getIP(r *http.Request) string {
	// Check X-Forwarded-For header first
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		return forwarded
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}
