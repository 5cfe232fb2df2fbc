// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the public API and
// the admin dashboard API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"aidigest/internal/ai"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse is the uniform error body for both API surfaces.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readJSON decodes the request body into dst, rejecting unknown fields and
// oversized payloads.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// providerErrorStatus maps a content-provider failure onto an HTTP status
// for the admin generation endpoints.
func providerErrorStatus(err error) int {
	var aiErr *ai.Error
	if !errors.As(err, &aiErr) {
		return http.StatusInternalServerError
	}
	switch aiErr.Kind {
	case ai.KindConfiguration:
		return http.StatusServiceUnavailable
	case ai.KindAuthentication:
		return http.StatusBadGateway
	case ai.KindRateLimit:
		return http.StatusTooManyRequests
	case ai.KindServer, ai.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
