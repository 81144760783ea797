// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/upcheckhq/upcheck/internal/logging"
	"github.com/upcheckhq/upcheck/internal/models"
	"github.com/upcheckhq/upcheck/internal/validation"
)

// respondJSON sends a JSON response. Every handler path terminates in a
// call to this function or respondError, so no connection is left without
// a well-formed status and body.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal response body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write response body")
	}
}

// respondError sends a structured error response. The wrapped err, when
// present, is logged but never exposed to the caller.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().
			Str("code", code).
			Int("status", status).
			Err(err).
			Msg("request failed")
	}
	respondJSON(w, status, models.ErrorResponse{
		Error: models.APIError{Code: code, Message: message},
	})
}

// decodeBody best-effort parses the request body into dst. The body is
// read to end-of-stream; unparseable or empty content leaves dst at its
// zero value rather than failing the request, so validation downstream
// reports the missing fields instead. Decoding goes through a temporary
// because the codec fills in every field it managed to parse before
// hitting a syntax or type error, and a truncated body must not smuggle
// those fields past validation.
func decodeBody[T any](r *http.Request, dst *T) {
	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		return
	}
	var parsed T
	if err := json.Unmarshal(data, &parsed); err != nil {
		logger := logging.Ctx(r.Context())
		logger.Debug().Err(err).Msg("discarding unparseable request body")
		return
	}
	*dst = parsed
}

// validateRequest validates v and writes the aggregated 400 response on
// failure. Returns true when the request may proceed.
func validateRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := validation.ValidateStruct(v); err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return false
	}
	return true
}

// bearerToken extracts the token id from the request headers.
func bearerToken(r *http.Request) string {
	return r.Header.Get(tokenHeader)
}
