// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("filestore.New returned error: %v", err)
	}
	return NewService(store)
}

func TestCreateIssuesTwentyCharTokenWithHourExpiry(t *testing.T) {
	svc := newTestService(t)
	now := time.Now()
	svc.now = func() time.Time { return now }

	tok, err := svc.Create(context.Background(), "12345678901")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(tok.ID) != models.TokenIDLength {
		t.Errorf("token id length = %d, want %d", len(tok.ID), models.TokenIDLength)
	}
	if tok.Phone != "12345678901" {
		t.Errorf("token phone = %q, want 12345678901", tok.Phone)
	}
	if want := now.Add(time.Hour).UnixMilli(); tok.Expires != want {
		t.Errorf("token expires = %d, want %d", tok.Expires, want)
	}

	// Token must be persisted and readable back.
	got, err := svc.Get(context.Background(), tok.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != tok {
		t.Errorf("Get = %+v, want %+v", got, tok)
	}
}

func TestVerify(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()
	svc.now = func() time.Time { return now }

	tok, err := svc.Create(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	tests := []struct {
		name  string
		id    string
		phone string
		at    time.Time
		want  bool
	}{
		{"valid token and phone", tok.ID, "12345678901", now, true},
		{"wrong phone", tok.ID, "10987654321", now, false},
		{"missing token", "nosuchtokenid1234567", "12345678901", now, false},
		{"just before expiry", tok.ID, "12345678901", tok.ExpiresAt().Add(-time.Millisecond), true},
		{"exactly at expiry", tok.ID, "12345678901", tok.ExpiresAt(), false},
		{"after expiry", tok.ID, "12345678901", tok.ExpiresAt().Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.at }
			if got := svc.Verify(ctx, tt.id, tt.phone); got != tt.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tt.id, tt.phone, got, tt.want)
			}
		})
	}
}

func TestExtendValidToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	start := time.Now()
	svc.now = func() time.Time { return start }

	tok, err := svc.Create(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Half an hour later the extension pushes expiry a full hour out.
	later := start.Add(30 * time.Minute)
	svc.now = func() time.Time { return later }

	extended, err := svc.Extend(ctx, tok.ID)
	if err != nil {
		t.Fatalf("Extend returned error: %v", err)
	}
	if want := later.Add(time.Hour).UnixMilli(); extended.Expires != want {
		t.Errorf("extended expires = %d, want %d", extended.Expires, want)
	}

	got, err := svc.Get(ctx, tok.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Expires != extended.Expires {
		t.Errorf("persisted expires = %d, want %d", got.Expires, extended.Expires)
	}
}

func TestExtendExpiredTokenRefused(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	start := time.Now()
	svc.now = func() time.Time { return start }

	tok, err := svc.Create(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	svc.now = func() time.Time { return tok.ExpiresAt().Add(time.Second) }
	if _, err := svc.Extend(ctx, tok.ID); !errors.Is(err, ErrExpired) {
		t.Fatalf("Extend on expired token = %v, want ErrExpired", err)
	}

	// Expiry must be unchanged after the refused extension.
	got, err := svc.Get(ctx, tok.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Expires != tok.Expires {
		t.Errorf("expires changed by refused Extend: %d, want %d", got.Expires, tok.Expires)
	}
}

func TestExtendMissingToken(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Extend(context.Background(), "nosuchtokenid1234567"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Extend on missing token = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Create(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(ctx, tok.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, tok.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	if svc.Verify(ctx, tok.ID, "12345678901") {
		t.Error("Verify succeeded for a deleted token")
	}
}

func TestRandomIDAlphabet(t *testing.T) {
	id, err := RandomID(models.TokenIDLength)
	if err != nil {
		t.Fatalf("RandomID returned error: %v", err)
	}
	if len(id) != models.TokenIDLength {
		t.Fatalf("RandomID length = %d, want %d", len(id), models.TokenIDLength)
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			t.Errorf("RandomID produced character %q outside alphabet", r)
		}
	}
}
