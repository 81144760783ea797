// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/upcheckhq/upcheck/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator, registering custom rules on
// first use.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// phone: the 11-character identifier used as the users key.
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) == 11
		})

		// tokenid: a 20-character token or check identifier.
		_ = validate.RegisterValidation("tokenid", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) == models.TokenIDLength
		})
	})
	return validate
}

// ValidateStruct validates v against its validate tags. It returns nil on
// success; otherwise an error listing every failed field, suitable for a
// single aggregated bad-request response.
func ValidateStruct(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return fmt.Errorf("missing required field(s) or field(s) are invalid: %s", strings.Join(fields, ", "))
}

// describe renders one field error in a compact, caller-facing form.
func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "phone":
		return field + " must be an 11-character phone number"
	case "tokenid":
		return fmt.Sprintf("%s must be a %d-character id", field, models.TokenIDLength)
	case "eq":
		return fmt.Sprintf("%s must equal %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
