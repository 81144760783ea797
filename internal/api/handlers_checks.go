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

// newCheckID generates a random id for a new check document, drawn from
// the same alphabet as token ids.
func newCheckID() (string, error) {
	return token.RandomID(models.CheckIDLength)
}

// createCheckRequest is the POST /checks payload. Ownership comes from
// the token header, not the body.
type createCheckRequest struct {
	Protocol       string `json:"protocol" validate:"required,oneof=http https"`
	URL            string `json:"url" validate:"required"`
	Method         string `json:"method" validate:"required,oneof=get post put delete"`
	SuccessCodes   []int  `json:"successCodes" validate:"required,min=1"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"required,min=1,max=5"`
}

// updateCheckRequest is the PUT /checks payload. ID identifies the check;
// at least one of the optional fields must be supplied.
type updateCheckRequest struct {
	ID             string `json:"id" validate:"required,tokenid"`
	Protocol       string `json:"protocol" validate:"omitempty,oneof=http https"`
	URL            string `json:"url"`
	Method         string `json:"method" validate:"omitempty,oneof=get post put delete"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"omitempty,min=1,max=5"`
}

// CheckCreate registers an uptime check for the token's owner.
//
// Method: POST /checks
// Headers: token
//
// Response:
//   - 200: the stored check document, id included
//   - 400: missing/invalid fields, or the per-user check cap is reached
//   - 403: token missing or invalid
//   - 500: store failure
func (h *Handler) CheckCreate(w http.ResponseWriter, r *http.Request) {
	var req createCheckRequest
	decodeBody(r, &req)
	req.Protocol = strings.ToLower(strings.TrimSpace(req.Protocol))
	req.URL = strings.TrimSpace(req.URL)
	req.Method = strings.ToLower(strings.TrimSpace(req.Method))
	if !validateRequest(w, r, &req) {
		return
	}

	user, ok := h.userFromToken(w, r)
	if !ok {
		return
	}

	if len(user.Checks) >= h.cfg.Checks.Max {
		respondError(w, r, http.StatusBadRequest, codeMaxChecks, "the user already has the maximum number of checks", nil)
		return
	}

	id, err := newCheckID()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not generate a check id", err)
		return
	}

	check := models.Check{
		ID:             id,
		UserPhone:      user.Phone,
		Protocol:       req.Protocol,
		URL:            req.URL,
		Method:         req.Method,
		SuccessCodes:   req.SuccessCodes,
		TimeoutSeconds: req.TimeoutSeconds,
	}

	if err := h.store.Create(r.Context(), checksCollection, check.ID, check); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not create the new check", err)
		return
	}

	user.Checks = append(user.Checks, check.ID)
	if err := h.store.Update(r.Context(), usersCollection, user.Phone, user); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not update the user with the new check", err)
		return
	}

	respondJSON(w, http.StatusOK, check)
}

// CheckRead returns a check owned by the caller.
//
// Method: GET /checks?id=<20-char id>
// Headers: token
//
// Response:
//   - 200: the check document
//   - 400: missing or invalid id
//   - 403: token missing, invalid, or for a different owner
//   - 404: no such check
func (h *Handler) CheckRead(w http.ResponseWriter, r *http.Request) {
	req := struct {
		ID string `validate:"required,tokenid"`
	}{ID: strings.TrimSpace(r.URL.Query().Get("id"))}
	if !validateRequest(w, r, &req) {
		return
	}

	check, ok := h.ownedCheck(w, r, req.ID)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, check)
}

// CheckUpdate modifies a check owned by the caller. Only the supplied
// fields change; state and last-checked are owned by the background
// worker and are never writable here.
//
// Method: PUT /checks
// Headers: token
//
// Response:
//   - 200: the updated check
//   - 400: invalid fields, or no updatable field supplied
//   - 403: token missing, invalid, or for a different owner
//   - 404: no such check
//   - 500: store failure
func (h *Handler) CheckUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateCheckRequest
	decodeBody(r, &req)
	req.ID = strings.TrimSpace(req.ID)
	req.Protocol = strings.ToLower(strings.TrimSpace(req.Protocol))
	req.URL = strings.TrimSpace(req.URL)
	req.Method = strings.ToLower(strings.TrimSpace(req.Method))
	if !validateRequest(w, r, &req) {
		return
	}
	if req.Protocol == "" && req.URL == "" && req.Method == "" && len(req.SuccessCodes) == 0 && req.TimeoutSeconds == 0 {
		respondError(w, r, http.StatusBadRequest, codeValidation, "missing fields to update", nil)
		return
	}

	check, ok := h.ownedCheck(w, r, req.ID)
	if !ok {
		return
	}

	if req.Protocol != "" {
		check.Protocol = req.Protocol
	}
	if req.URL != "" {
		check.URL = req.URL
	}
	if req.Method != "" {
		check.Method = req.Method
	}
	if len(req.SuccessCodes) > 0 {
		check.SuccessCodes = req.SuccessCodes
	}
	if req.TimeoutSeconds > 0 {
		check.TimeoutSeconds = req.TimeoutSeconds
	}

	if err := h.store.Update(r.Context(), checksCollection, check.ID, check); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not update the check", err)
		return
	}

	respondJSON(w, http.StatusOK, check)
}

// CheckDelete removes a check owned by the caller and unlinks its id from
// the owner's check list.
//
// Method: DELETE /checks?id=<20-char id>
// Headers: token
//
// Response:
//   - 200: check deleted
//   - 400: missing or invalid id
//   - 403: token missing, invalid, or for a different owner
//   - 404: no such check
//   - 500: store failure
func (h *Handler) CheckDelete(w http.ResponseWriter, r *http.Request) {
	req := struct {
		ID string `validate:"required,tokenid"`
	}{ID: strings.TrimSpace(r.URL.Query().Get("id"))}
	if !validateRequest(w, r, &req) {
		return
	}

	check, ok := h.ownedCheck(w, r, req.ID)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), checksCollection, check.ID); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not delete the specified check", err)
		return
	}

	var user models.User
	if err := h.store.Read(r.Context(), usersCollection, check.UserPhone, &user); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not read the check's owner", err)
		return
	}

	kept := user.Checks[:0]
	for _, id := range user.Checks {
		if id != check.ID {
			kept = append(kept, id)
		}
	}
	user.Checks = kept
	if err := h.store.Update(r.Context(), usersCollection, user.Phone, user); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not remove the check from the user", err)
		return
	}

	respondJSON(w, http.StatusOK, struct{}{})
}

// userFromToken resolves the token header to its owning user. Any failure
// along the chain answers the uniform 403 so callers cannot tell a missing
// token from a deleted owner. Returns ok=false when a response was written.
func (h *Handler) userFromToken(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	tok, err := h.tokens.Get(r.Context(), bearerToken(r))
	if err != nil || !tok.Valid(h.now()) {
		respondError(w, r, http.StatusForbidden, codeForbidden, errTokenInvalid, nil)
		return models.User{}, false
	}

	var user models.User
	if err := h.store.Read(r.Context(), usersCollection, tok.Phone, &user); err != nil {
		respondError(w, r, http.StatusForbidden, codeForbidden, errTokenInvalid, nil)
		return models.User{}, false
	}
	return user, true
}

// ownedCheck loads the check and verifies the caller's token against its
// owner. Returns ok=false when a response was written: 404 for a missing
// check, 403 for a failed or mismatched token.
func (h *Handler) ownedCheck(w http.ResponseWriter, r *http.Request, id string) (models.Check, bool) {
	var check models.Check
	if err := h.store.Read(r.Context(), checksCollection, id, &check); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "the specified check does not exist", nil)
			return models.Check{}, false
		}
		respondError(w, r, http.StatusInternalServerError, codeStoreError, "could not read the check", err)
		return models.Check{}, false
	}

	if !h.tokens.Verify(r.Context(), bearerToken(r), check.UserPhone) {
		respondError(w, r, http.StatusForbidden, codeForbidden, errTokenInvalid, nil)
		return models.Check{}, false
	}
	return check, true
}
