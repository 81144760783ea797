// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package models

// User is an account document in the users collection, keyed by phone
// number. The phone number is the primary identifier and is immutable
// after creation.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	// HashedPassword is the HMAC digest of the password. It is stored,
	// never the raw password, and is stripped before any API response.
	HashedPassword string `json:"hashedPassword,omitempty"`

	TOSAgreement bool `json:"tosAgreement"`

	// Checks lists the ids of checks owned by this user.
	Checks []string `json:"checks,omitempty"`
}

// Sanitized returns a copy safe to return to callers: the password digest
// is removed.
func (u User) Sanitized() User {
	u.HashedPassword = ""
	return u
}
