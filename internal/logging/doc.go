// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package logging provides centralized zerolog-based logging for Upcheck.
//
// Initialize once at startup, then log through the package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("env", cfg.EnvName).Msg("server starting")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// chain is silently dropped.
//
// The package also ships a slog adapter (NewSlogLogger) so dependencies
// that speak log/slog, such as sutureslog, write through the same backend.
package logging
