// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package api

// Machine-readable error codes used in error response bodies.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeForbidden        = "FORBIDDEN"
	codeNotFound         = "NOT_FOUND"
	codeConflict         = "CONFLICT"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeRateLimited      = "RATE_LIMITED"
	codeUserNotFound     = "USER_NOT_FOUND"
	codeInvalidPassword  = "INVALID_PASSWORD"
	codeTokenExpired     = "TOKEN_EXPIRED"
	codeMaxChecks        = "MAX_CHECKS_REACHED"
	codeStoreError       = "STORE_ERROR"
)

// errTokenInvalid is the uniform message for a missing or failed bearer
// token, kept identical across resources so callers cannot probe which
// part of the verification failed.
const errTokenInvalid = "missing required token in header, or token is invalid"
