// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package middleware

import (
	"net/http"
	"strings"
)

// NormalizePath canonicalizes the request path before routing: leading and
// trailing slashes are trimmed and the path is lowercased, so /Users/,
// //users, and /USERS all dispatch to the users resource.
func NormalizePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trimmed := strings.Trim(r.URL.Path, "/")
		r.URL.Path = "/" + strings.ToLower(trimmed)
		next.ServeHTTP(w, r)
	})
}
