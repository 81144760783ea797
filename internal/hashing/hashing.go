// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package hashing provides the one-way password digest used by the users
// and tokens handlers: HMAC-SHA256 of the secret string keyed with the
// server-side hashing secret, hex encoded. The transform is deterministic
// so stored digests can be compared by equality.
package hashing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrEmptyInput indicates a digest was requested for an empty secret.
var ErrEmptyInput = errors.New("hashing: input must not be empty")

// Service computes digests with a fixed server-side key.
type Service struct {
	key []byte
}

// New creates a hashing service with the given secret key.
func New(secret string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("hashing: secret key must not be empty")
	}
	return &Service{key: []byte(secret)}, nil
}

// Hash returns the hex-encoded HMAC-SHA256 digest of the input.
func (s *Service) Hash(input string) (string, error) {
	if input == "" {
		return "", ErrEmptyInput
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(input))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Equal reports whether the digest of input matches the stored digest.
// Comparison is constant time.
func (s *Service) Equal(input, digest string) bool {
	computed, err := s.Hash(input)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(computed), []byte(digest))
}
