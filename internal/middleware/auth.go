// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// maxAuthFailures is how many bad keys an IP may present before being
	// locked out.
	maxAuthFailures = 5

	// lockoutWindow is how long a locked-out IP stays blocked.
	lockoutWindow = 15 * time.Minute
)

// AdminAuth guards the admin API with a single bearer key. The configured
// key may be a bcrypt hash (prefixed $2) or, for development, the plain
// key itself. Repeated failures from one IP trigger a temporary lockout.
type AdminAuth struct {
	key      string
	isHash   bool
	mu       sync.Mutex
	failures map[string]*authFailures
}

type authFailures struct {
	count       int
	lockedUntil time.Time
}

// NewAdminAuth creates an AdminAuth for the configured key.
func NewAdminAuth(key string) *AdminAuth {
	return &AdminAuth{
		key:      key,
		isHash:   strings.HasPrefix(key, "$2"),
		failures: make(map[string]*authFailures),
	}
}

// Middleware rejects requests without a valid Authorization: Bearer key.
func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.key == "" {
			// No key configured means the admin API is disabled outright.
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		ip := clientIP(r)
		if a.lockedOut(ip) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		presented, ok := bearerToken(r)
		if !ok || !a.matches(presented) {
			a.recordFailure(ip)
			slog.Warn("admin auth failed", "remote", ip, "path", r.URL.Path)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		a.clearFailures(ip)
		next.ServeHTTP(w, r)
	})
}

// matches compares the presented key against the configured one.
func (a *AdminAuth) matches(presented string) bool {
	if a.isHash {
		return bcrypt.CompareHashAndPassword([]byte(a.key), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.key), []byte(presented)) == 1
}

func (a *AdminAuth) lockedOut(ip string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.failures[ip]
	if !ok {
		return false
	}
	if f.lockedUntil.IsZero() {
		return false
	}
	if time.Now().After(f.lockedUntil) {
		delete(a.failures, ip)
		return false
	}
	return true
}

func (a *AdminAuth) recordFailure(ip string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.failures[ip]
	if !ok {
		f = &authFailures{}
		a.failures[ip] = f
	}
	f.count++
	if f.count >= maxAuthFailures {
		f.lockedUntil = time.Now().Add(lockoutWindow)
		slog.Warn("admin auth lockout", "remote", ip, "until", f.lockedUntil)
	}
}

func (a *AdminAuth) clearFailures(ip string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.failures, ip)
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}
