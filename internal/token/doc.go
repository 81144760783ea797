// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package token implements the bearer token lifecycle: issuance against a
// phone number, fail-closed verification, expiry extension, and deletion.
// Tokens live in the filestore tokens collection and are the sole proof of
// ownership for user resources.
package token
