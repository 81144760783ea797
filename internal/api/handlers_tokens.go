// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/models"
	"github.com/upcheckhq/upcheck/internal/token"
)

// createTokenRequest is the POST /tokens payload.
type createTokenRequest struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// updateTokenRequest is the PUT /tokens payload. Extend must be an
// explicit true; there is no other mutation a token supports.
type updateTokenRequest struct {
	ID     string `json:"id" validate:"required,tokenid"`
	Extend bool   `json:"extend" validate:"required,eq=true"`
}

// TokenCreate issues a bearer token for a phone+password pair.
//
// Method: POST /tokens
//
// Response:
//   - 200: the token document (id, phone, expires)
//   - 400: missing fields, unknown user, or wrong password
//   - 500: store failure
//
// The unknown-user and wrong-password failures are distinguishable by
// their error codes, mirroring the account lookup order.
func (h *Handler) TokenCreate(w http.ResponseWriter, r *http.Request) {
	var req createTokenRequest
	decodeBody(r, &req)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Password = strings.TrimSpace(req.Password)
	if !validateRequest(w, r, &req) {
		return
	}

	var user models.User
	if err := h.store.Read(r.Context(), usersCollection, req.Phone, &user); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			respondError(w, r, http.StatusBadRequest, codeUserNotFound, "could not find the specified user", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not read the user", err)
		return
	}

	if !h.hasher.Equal(req.Password, user.HashedPassword) {
		respondError(w, r, http.StatusBadRequest, codeInvalidPassword, "invalid password", nil)
		return
	}

	tok, err := h.tokens.Create(r.Context(), req.Phone)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "token could not be created", err)
		return
	}

	respondJSON(w, http.StatusOK, tok)
}

// TokenRead returns a token document by id. Possession of a valid id is
// the only credential; there is no ownership check.
//
// Method: GET /tokens?id=<20-char id>
//
// Response:
//   - 200: the token document
//   - 400: missing or invalid id
//   - 404: no such token
func (h *Handler) TokenRead(w http.ResponseWriter, r *http.Request) {
	req := struct {
		ID string `validate:"required,tokenid"`
	}{ID: strings.TrimSpace(r.URL.Query().Get("id"))}
	if !validateRequest(w, r, &req) {
		return
	}

	tok, err := h.tokens.Get(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, token.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified token does not exist", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not read the token", err)
		return
	}

	respondJSON(w, http.StatusOK, tok)
}

// TokenUpdate extends an unexpired token's expiry by one hour from now.
//
// Method: PUT /tokens
//
// Response:
//   - 200: the token with its new expiry
//   - 400: missing/invalid fields, or the token has already expired
//   - 404: no such token
//   - 500: store failure
func (h *Handler) TokenUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateTokenRequest
	decodeBody(r, &req)
	req.ID = strings.TrimSpace(req.ID)
	if !validateRequest(w, r, &req) {
		return
	}

	tok, err := h.tokens.Extend(r.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			respondError(w, r, http.StatusBadRequest, codeTokenExpired, "the token has already expired and cannot be extended", nil)
		case errors.Is(err, token.ErrNotFound):
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified token does not exist", nil)
		default:
			respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not update the token's expiration", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, tok)
}

// TokenDelete revokes a token by id.
//
// Method: DELETE /tokens?id=<20-char id>
//
// Response:
//   - 200: token deleted
//   - 400: missing or invalid id
//   - 404: no such token
//   - 500: store failure
func (h *Handler) TokenDelete(w http.ResponseWriter, r *http.Request) {
	req := struct {
		ID string `validate:"required,tokenid"`
	}{ID: strings.TrimSpace(r.URL.Query().Get("id"))}
	if !validateRequest(w, r, &req) {
		return
	}

	if err := h.tokens.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, token.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified token does not exist", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not delete the specified token", err)
		return
	}

	respondJSON(w, http.StatusOK, struct{}{})
}
