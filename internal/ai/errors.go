// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies provider failures so callers can decide what is fixable
// by the operator (configuration, credentials) and what is transient
// (rate limits, upstream outages). No kind triggers an automatic retry.
type Kind int

const (
	// KindConfiguration means no API key is configured for the provider.
	KindConfiguration Kind = iota
	// KindAuthentication means the provider rejected the key (401/403).
	KindAuthentication
	// KindRateLimit means the provider returned 429.
	KindRateLimit
	// KindServer means the provider failed upstream (5xx) or the
	// transport failed.
	KindServer
	// KindMalformedResponse means the response survived none of the
	// parsing fallback stages.
	KindMalformedResponse
)

// String returns a short human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return "unknown"
}

// Error is a typed provider failure. All kinds are terminal for the
// generation attempt that produced them.
type Error struct {
	Provider string
	Kind     Kind
	Status   int // HTTP status, 0 when not applicable
	Message  string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai: %s %s error (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("ai: %s %s error: %s", e.Provider, e.Kind, e.Message)
}

// IsKind reports whether err is (or wraps) a provider *Error of kind k.
func IsKind(err error, k Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == k
}

// statusError maps a non-200 provider response onto the error taxonomy.
func statusError(provider string, status int, body string) *Error {
	kind := KindServer
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuthentication
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	}
	return &Error{Provider: provider, Kind: kind, Status: status, Message: body}
}
