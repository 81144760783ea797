// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package metrics provides Prometheus instrumentation for API requests,
// document store operations, check executions, and SMS delivery. Metrics
// are registered on the default registry and exposed via /metrics.
package metrics
