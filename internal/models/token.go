// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package models

import "time"

// TokenIDLength is the length of a bearer token identifier.
const TokenIDLength = 20

// TokenTTL is how long a token stays valid after creation or extension.
const TokenTTL = time.Hour

// Token is a bearer token document in the tokens collection, keyed by a
// random 20-character id. A token proves temporary ownership of the user
// resource identified by Phone. Only Expires may change after creation.
type Token struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`

	// Expires is the absolute expiry instant in Unix milliseconds.
	Expires int64 `json:"expires"`
}

// ExpiresAt returns the expiry instant as a time.Time.
func (t Token) ExpiresAt() time.Time {
	return time.UnixMilli(t.Expires)
}

// Valid reports whether the token is unexpired at the given instant.
// A token whose expiry equals now is already expired.
func (t Token) Valid(now time.Time) bool {
	return now.UnixMilli() < t.Expires
}
