// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package filestore implements the flat-document persistence layer: CRUD
// and enumeration over named collections of JSON documents, each stored as
// an independent file under <baseDir>/<collection>/<id>.json.
//
// The store is shared by every concurrent request and by the worker and
// console. It deliberately offers no transactions, no locking, and no
// cross-collection integrity checks.
package filestore
