package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"golang.org/x/time/rate"
)

type contextKey string

const userKey contextKey = "user"

// Authenticate verifies the bearer credential and resolves the local user
// record. Websocket clients cannot set headers from the browser, so a
// token query parameter is accepted as a fallback.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := bearerToken(r)
		if credential == "" {
			writeError(w, domain.ErrUnauthorized)
			return
		}

		identity, err := h.verifier.Verify(r.Context(), credential)
		if err != nil {
			writeError(w, err)
			return
		}
		user, err := h.users.Resolve(r.Context(), identity)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userKey).(*domain.User)
	return u
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return r.URL.Query().Get("token")
}

// CORS allows the configured frontend origin to call the API.
func CORS(allowed string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowed == "*" || origin == allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const (
	// Entries idle longer than this are reclaimable; the sweep runs once
	// the table grows past limiterSweepSize, keeping it bounded without a
	// background goroutine.
	limiterIdleTTL   = 3 * time.Minute
	limiterSweepSize = 1024
)

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ipLimiters struct {
	mu      sync.Mutex
	entries map[string]*ipLimiter
}

func newIPLimiters() *ipLimiters {
	return &ipLimiters{entries: make(map[string]*ipLimiter)}
}

func (l *ipLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) > limiterSweepSize {
		for addr, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.entries, addr)
			}
		}
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiter{lim: rate.NewLimiter(20, 40)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.lim
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimit caps each client IP at 20 requests/second with burst 40.
func RateLimit() func(http.Handler) http.Handler {
	limiters := newIPLimiters()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiters.get(ip, time.Now()).Allow() {
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
