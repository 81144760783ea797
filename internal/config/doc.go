// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package config loads application configuration with Koanf v2.
//
// Configuration is layered: a named environment baseline (staging or
// production, chosen via ENVIRONMENT with staging as the fallback), then an
// optional YAML config file, then environment variable overrides. Later
// layers win.
package config
