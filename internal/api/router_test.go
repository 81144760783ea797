// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouterRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, testPhone)
	handler := NewRouter(env.handler).Setup()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"ping", http.MethodGet, "/ping", http.StatusOK},
		{"ping mixed case with trailing slash", http.MethodGet, "/Ping/", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
		{"wrong method on ping", http.MethodDelete, "/ping", http.StatusMethodNotAllowed},
		{"users create without body", http.MethodPost, "/users", http.StatusBadRequest},
		{"users read without token", http.MethodGet, "/users?phone=" + testPhone, http.StatusForbidden},
		{"tokens read missing id", http.MethodGet, "/tokens", http.StatusBadRequest},
		{"checks create without token", http.MethodPost, "/checks", http.StatusBadRequest},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.wantStatus {
				t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRouterErrorBodiesAreJSON(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRouter(env.handler).Setup()

	for _, path := range []string{"/nope", "/ping"} {
		method := http.MethodGet
		if path == "/ping" {
			method = http.MethodPost
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s %s: Content-Type = %q, want application/json", method, path, ct)
		}
		code := decodeError(t, rec)
		if code == "" {
			t.Errorf("%s %s: error body carries no code", method, path)
		}
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRouter(env.handler).Setup()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestRouterRateLimitsTokenCreation(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, testPhone)
	handler := NewRouter(env.handler).Setup()

	// The POST /tokens limiter allows 10 requests per minute per IP.
	var limited *httptest.ResponseRecorder
	for i := 0; i < 15; i++ {
		body := strings.NewReader(`{"phone":"` + testPhone + `","password":"wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/tokens", body)
		req.RemoteAddr = "10.1.2.3:4444"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = rec
			break
		}
	}
	if limited == nil {
		t.Fatal("token creation never rate limited after 15 rapid attempts")
	}

	// The 429 answers the same JSON envelope as every other error.
	if ct := limited.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("429 Content-Type = %q, want application/json", ct)
	}
	if code := decodeError(t, limited); code != codeRateLimited {
		t.Errorf("429 error code = %q, want %q", code, codeRateLimited)
	}
}
