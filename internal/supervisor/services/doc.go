// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package services contains suture.Service adapters for components that
// do not speak the supervision protocol natively, currently the HTTP(S)
// listeners.
package services
