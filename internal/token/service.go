// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package token

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/models"
)

// Collection is the filestore collection holding token documents.
const Collection = "tokens"

// Sentinel errors returned by token operations.
var (
	// ErrNotFound indicates no token document exists for the id.
	ErrNotFound = errors.New("token not found")

	// ErrExpired indicates the token's expiry has passed. An expired
	// token cannot be extended back to life.
	ErrExpired = errors.New("token has expired")
)

// idAlphabet is the character set for generated token ids.
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service manages the bearer token lifecycle on top of the document store.
// Expiry is enforced lazily at verification time; there is no background
// reaper.
type Service struct {
	store *filestore.Store

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewService creates a token service backed by the given store.
func NewService(store *filestore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create issues a new token for the phone number: a random 20-character id
// with an expiry one hour out, persisted in the tokens collection.
func (s *Service) Create(ctx context.Context, phone string) (models.Token, error) {
	id, err := randomID(models.TokenIDLength)
	if err != nil {
		return models.Token{}, fmt.Errorf("generating token id: %w", err)
	}

	tok := models.Token{
		ID:      id,
		Phone:   phone,
		Expires: s.now().Add(models.TokenTTL).UnixMilli(),
	}
	if err := s.store.Create(ctx, Collection, tok.ID, tok); err != nil {
		return models.Token{}, fmt.Errorf("storing token: %w", err)
	}
	return tok, nil
}

// Get loads a token document by id.
func (s *Service) Get(ctx context.Context, id string) (models.Token, error) {
	var tok models.Token
	if err := s.store.Read(ctx, Collection, id, &tok); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return models.Token{}, ErrNotFound
		}
		return models.Token{}, err
	}
	return tok, nil
}

// Verify reports whether the token id is currently valid for the phone
// number. It fails closed: a lookup failure, a missing token, a phone
// mismatch, or a past (or exactly-now) expiry all yield false.
func (s *Service) Verify(ctx context.Context, id, phone string) bool {
	tok, err := s.Get(ctx, id)
	if err != nil {
		return false
	}
	return tok.Phone == phone && tok.Valid(s.now())
}

// Extend pushes the token's expiry one hour out from now. A token whose
// expiry has already passed is refused with ErrExpired and left unchanged.
func (s *Service) Extend(ctx context.Context, id string) (models.Token, error) {
	tok, err := s.Get(ctx, id)
	if err != nil {
		return models.Token{}, err
	}
	if !tok.Valid(s.now()) {
		return models.Token{}, ErrExpired
	}

	tok.Expires = s.now().Add(models.TokenTTL).UnixMilli()
	if err := s.store.Update(ctx, Collection, id, tok); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return models.Token{}, ErrNotFound
		}
		return models.Token{}, err
	}
	return tok, nil
}

// Delete removes a token document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// randomID generates a random identifier of length n from idAlphabet.
func randomID(n int) (string, error) {
	max := big.NewInt(int64(len(idAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = idAlphabet[idx.Int64()]
	}
	return string(out), nil
}

// RandomID generates a random identifier of length n, shared with the
// checks handler for check ids.
func RandomID(n int) (string, error) {
	return randomID(n)
}
