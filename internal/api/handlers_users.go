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
)

// createUserRequest is the POST /users payload.
type createUserRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone"`
	Password     string `json:"password" validate:"required"`
	TOSAgreement bool   `json:"tosAgreement" validate:"required,eq=true"`
}

// updateUserRequest is the PUT /users payload. Phone identifies the user;
// at least one of the optional fields must be supplied.
type updateUserRequest struct {
	Phone     string `json:"phone" validate:"required,phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// UserCreate registers a new account.
//
// Method: POST /users
//
// Response:
//   - 200: user created; body is the user without the password digest
//   - 400: missing or invalid fields (single aggregated response)
//   - 409: a user with that phone number already exists
//   - 500: store failure
func (h *Handler) UserCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	decodeBody(r, &req)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Password = strings.TrimSpace(req.Password)
	if !validateRequest(w, r, &req) {
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not hash the user's password", err)
		return
	}

	user := models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		HashedPassword: digest,
		TOSAgreement:   true,
	}

	if err := h.store.Create(r.Context(), usersCollection, user.Phone, user); err != nil {
		if errors.Is(err, filestore.ErrAlreadyExists) {
			respondError(w, r, http.StatusConflict, codeConflict, "a user with that phone number already exists", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not create the new user", err)
		return
	}

	respondJSON(w, http.StatusOK, user.Sanitized())
}

// UserRead returns an account owned by the caller.
//
// Method: GET /users?phone=<11-char phone>
// Headers: token
//
// Response:
//   - 200: the user document, password digest stripped
//   - 400: missing or invalid phone
//   - 403: token missing, invalid, or for a different phone
//   - 404: no such user
func (h *Handler) UserRead(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Phone string `validate:"required,phone"`
	}{Phone: strings.TrimSpace(r.URL.Query().Get("phone"))}
	if !validateRequest(w, r, &req) {
		return
	}

	if !h.tokens.Verify(r.Context(), bearerToken(r), req.Phone) {
		respondError(w, r, http.StatusForbidden, codeForbidden, errTokenInvalid, nil)
		return
	}

	var user models.User
	if err := h.store.Read(r.Context(), usersCollection, req.Phone, &user); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified user does not exist", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not read the user", err)
		return
	}

	respondJSON(w, http.StatusOK, user.Sanitized())
}

// UserUpdate modifies name or password of an account owned by the caller.
//
// Method: PUT /users
// Headers: token
//
// Response:
//   - 200: updated user, password digest stripped
//   - 400: invalid phone, or no updatable field supplied
//   - 403: token missing, invalid, or for a different phone
//   - 404: no such user
//   - 500: store failure
func (h *Handler) UserUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	decodeBody(r, &req)
	req.Phone = strings.TrimSpace(req.Phone)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Password = strings.TrimSpace(req.Password)
	if !validateRequest(w, r, &req) {
		return
	}
	if req.FirstName == "" && req.LastName == "" && req.Password == "" {
		respondError(w, r, http.StatusBadRequest, codeValidation, "missing fields to update", nil)
		return
	}

	if !h.tokens.Verify(r.Context(), bearerToken(r), req.Phone) {
		respondError(w, r, http.StatusForbidden, codeForbidden, errTokenInvalid, nil)
		return
	}

	var user models.User
	if err := h.store.Read(r.Context(), usersCollection, req.Phone, &user); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified user does not exist", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not read the user", err)
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Password != "" {
		digest, err := h.hasher.Hash(req.Password)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not hash the user's password", err)
			return
		}
		user.HashedPassword = digest
	}

	if err := h.store.Update(r.Context(), usersCollection, req.Phone, user); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not update the user", err)
		return
	}

	respondJSON(w, http.StatusOK, user.Sanitized())
}

// UserDelete removes an account owned by the caller.
//
// Method: DELETE /users?phone=<11-char phone>
// Headers: token
//
// Response:
//   - 200: user deleted
//   - 400: missing or invalid phone
//   - 403: token missing, invalid, or for a different phone
//   - 404: no such user
//   - 500: store failure
//
// TODO: delete the tokens and checks owned by the phone number when the
// user is removed; today they are orphaned in their collections.
func (h *Handler) UserDelete(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Phone string `validate:"required,phone"`
	}{Phone: strings.TrimSpace(r.URL.Query().Get("phone"))}
	if !validateRequest(w, r, &req) {
		return
	}

	if !h.tokens.Verify(r.Context(), bearerToken(r), req.Phone) {
		respondError(w, r, http.StatusForbidden, codeForbidden, errTokenInvalid, nil)
		return
	}

	if err := h.store.Delete(r.Context(), usersCollection, req.Phone); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified user does not exist", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not delete the specified user", err)
		return
	}

	respondJSON(w, http.StatusOK, struct{}{})
}
