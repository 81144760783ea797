// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package middleware provides HTTP middleware shared by the router:
// request ID propagation, Prometheus instrumentation, and request path
// normalization.
package middleware
