// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package supervisor builds the suture supervision tree that runs the
// listeners, the checks worker, and the admin console, restarting
// whatever crashes with exponential backoff.
package supervisor
