// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package console provides the interactive admin shell: a line-based
// command loop on stdin for inspecting users, checks, rotated check
// logs, and process statistics, plus a clean way to shut the whole
// service down.
package console
