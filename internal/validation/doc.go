// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package validation provides struct validation using
// go-playground/validator v10: a thread-safe singleton instance with
// custom rules for the 11-character phone identifier and 20-character
// token/check ids, and error aggregation so a handler can answer one
// bad-request response covering every invalid field.
package validation
