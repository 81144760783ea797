// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/upcheckhq/upcheck/internal/logging"
)

// RequestID generates a unique ID for each request and adds it to both the
// response header and the request context, where the logging package picks
// it up. An ID supplied by an upstream proxy via X-Request-ID is preserved.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
