// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package models

// CheckIDLength is the length of a check identifier.
const CheckIDLength = 20

// Check states as persisted in the checks collection. A check that has
// never been executed has an empty state.
const (
	CheckStateUp   = "up"
	CheckStateDown = "down"
)

// Check is an uptime check document in the checks collection, keyed by a
// random 20-character id and owned by the user identified by UserPhone.
type Check struct {
	ID        string `json:"id"`
	UserPhone string `json:"userPhone"`

	// Protocol is http or https.
	Protocol string `json:"protocol"`

	// URL is the host and path probed, without the protocol prefix.
	URL string `json:"url"`

	// Method is the HTTP method used for the probe.
	Method string `json:"method"`

	// SuccessCodes lists the response codes that count as up.
	SuccessCodes []int `json:"successCodes"`

	// TimeoutSeconds bounds the probe duration, 1 to 5 seconds.
	TimeoutSeconds int `json:"timeoutSeconds"`

	// State is up, down, or empty when the check has never run.
	State string `json:"state,omitempty"`

	// LastChecked is the Unix millisecond timestamp of the last probe,
	// zero if the check has never run.
	LastChecked int64 `json:"lastChecked,omitempty"`
}

// IsSuccessCode reports whether the given response code counts as up.
func (c Check) IsSuccessCode(code int) bool {
	for _, sc := range c.SuccessCodes {
		if sc == code {
			return true
		}
	}
	return false
}
