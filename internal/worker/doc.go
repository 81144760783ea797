// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package worker runs the background check loop: on a fixed cadence it
// sweeps the checks collection, probes every target over HTTP(S), logs
// the outcome, and sends an SMS alert to the owner whenever a check
// transitions between up and down.
package worker
