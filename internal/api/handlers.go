// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package api

import (
	"net/http"
	"time"

	"github.com/upcheckhq/upcheck/internal/config"
	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/hashing"
	"github.com/upcheckhq/upcheck/internal/token"
)

// Filestore collections owned by the API handlers.
const (
	usersCollection  = "users"
	checksCollection = "checks"
)

// tokenHeader is the request header carrying the bearer token id.
const tokenHeader = "token"

// Handler contains dependencies for the API handlers.
//
// Handler methods are split across files by resource:
//   - handlers.go: Handler struct, constructor, ping (this file)
//   - handlers_users.go: users resource (4 methods)
//   - handlers_tokens.go: tokens resource (4 methods)
//   - handlers_checks.go: checks resource (4 methods)
//   - handlers_helpers.go: shared request/response helpers
type Handler struct {
	store  *filestore.Store
	tokens *token.Service
	hasher *hashing.Service
	cfg    *config.Config

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewHandler creates an API handler wired to the document store, the token
// service, and the hashing service.
func NewHandler(store *filestore.Store, tokens *token.Service, hasher *hashing.Service, cfg *config.Config) *Handler {
	return &Handler{
		store:  store,
		tokens: tokens,
		hasher: hasher,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Ping answers 200 with an empty object. Useful as a liveness probe.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct{}{})
}
