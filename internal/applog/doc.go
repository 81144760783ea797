// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package applog persists check outcome history as JSON-line log files
// with gzip rotation. It is separate from the process logger in
// internal/logging: these files are application data, browsable from the
// admin console, not operational output.
package applog
