// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package validation

import (
	"strings"
	"testing"
)

type createUserPayload struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	Phone        string `validate:"required,phone"`
	Password     string `validate:"required"`
	TOSAgreement bool   `validate:"required,eq=true"`
}

func TestValidateStructAcceptsValidPayload(t *testing.T) {
	p := createUserPayload{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "12345678901",
		Password:     "secret",
		TOSAgreement: true,
	}
	if err := ValidateStruct(&p); err != nil {
		t.Errorf("ValidateStruct = %v, want nil", err)
	}
}

func TestValidateStructAggregatesAllFailures(t *testing.T) {
	p := createUserPayload{Phone: "123"}
	err := ValidateStruct(&p)
	if err == nil {
		t.Fatal("ValidateStruct = nil, want error")
	}

	msg := err.Error()
	for _, want := range []string{"FirstName", "LastName", "Phone", "Password", "TOSAgreement"} {
		if !strings.Contains(msg, want) {
			t.Errorf("aggregated error %q is missing field %s", msg, want)
		}
	}
}

func TestPhoneRule(t *testing.T) {
	type payload struct {
		Phone string `validate:"required,phone"`
	}

	if err := ValidateStruct(&payload{Phone: "12345678901"}); err != nil {
		t.Errorf("11-char phone rejected: %v", err)
	}
	if err := ValidateStruct(&payload{Phone: "1234567890"}); err == nil {
		t.Error("10-char phone accepted")
	}
	if err := ValidateStruct(&payload{Phone: "123456789012"}); err == nil {
		t.Error("12-char phone accepted")
	}
}

func TestTokenIDRule(t *testing.T) {
	type payload struct {
		ID string `validate:"required,tokenid"`
	}

	if err := ValidateStruct(&payload{ID: "abcdefghij0123456789"}); err != nil {
		t.Errorf("20-char id rejected: %v", err)
	}
	if err := ValidateStruct(&payload{ID: "short"}); err == nil {
		t.Error("short id accepted")
	}
}
