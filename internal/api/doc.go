// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package api implements the HTTP surface of the service: the resource
// handlers for users, tokens, and checks, the ping liveness probe, and
// the Chi router that binds them together.
//
// All resources are flat. A document is addressed by a query parameter
// (phone for users, id for tokens and checks) rather than a path
// segment, and each resource accepts exactly the four methods POST, GET,
// PUT, and DELETE. Responses are always JSON: a resource document on
// success, an ErrorResponse with a machine-readable code on failure.
//
// Authentication is a bearer token id in the "token" request header.
// User and check operations verify the token against the owning phone
// number; token operations treat possession of the id as the credential.
package api
