// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package hashing

import (
	"errors"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	svc, err := New("thisIsASecret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	a, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a != b {
		t.Errorf("same input produced different digests: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(a))
	}
}

func TestHashDependsOnKey(t *testing.T) {
	s1, _ := New("keyOne")
	s2, _ := New("keyTwo")

	d1, _ := s1.Hash("password123")
	d2, _ := s2.Hash("password123")
	if d1 == d2 {
		t.Error("different keys produced the same digest")
	}
}

func TestHashEmptyInput(t *testing.T) {
	svc, _ := New("secret")
	if _, err := svc.Hash(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Hash(\"\") = %v, want ErrEmptyInput", err)
	}
}

func TestNewEmptyKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") = nil error, want failure")
	}
}

func TestEqual(t *testing.T) {
	svc, _ := New("secret")
	digest, _ := svc.Hash("hunter2")

	if !svc.Equal("hunter2", digest) {
		t.Error("Equal rejected the matching password")
	}
	if svc.Equal("hunter3", digest) {
		t.Error("Equal accepted a wrong password")
	}
	if svc.Equal("", digest) {
		t.Error("Equal accepted an empty password")
	}
}
