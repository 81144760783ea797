// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package models defines the document shapes persisted by the filestore
// (users, tokens, checks) and the shared API response types.
package models
