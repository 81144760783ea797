// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/upcheckhq/upcheck/internal/config"
	"github.com/upcheckhq/upcheck/internal/logging"
	"github.com/upcheckhq/upcheck/internal/metrics"
)

// maxMessageLength is the longest message body Twilio accepts.
const maxMessageLength = 1600

// Sentinel errors returned by Send.
var (
	// ErrInvalidRecipient indicates the phone number is not 11 characters.
	ErrInvalidRecipient = errors.New("sms: invalid recipient phone number")

	// ErrInvalidMessage indicates an empty or oversized message body.
	ErrInvalidMessage = errors.New("sms: message must be 1 to 1600 characters")

	// ErrNotConfigured indicates missing Twilio credentials. Alerting is
	// optional; callers treat this as "delivery disabled".
	ErrNotConfigured = errors.New("sms: twilio credentials not configured")
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Client sends SMS messages through the Twilio REST API.
//
// Outbound calls are guarded two ways: a token-bucket rate limiter keeps
// the worker from flooding Twilio when many checks flap at once, and a
// circuit breaker stops hammering the API while it is failing.
type Client struct {
	cfg     config.SMSConfig
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[struct{}]

	// baseURL is overridable in tests.
	baseURL string
}

// NewClient creates a Twilio SMS client from configuration.
func NewClient(cfg config.SMSConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "twilio-sms",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("sms circuit breaker state change")
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		cb:      cb,
		baseURL: "https://api.twilio.com",
	}
}

// Send delivers a message to the 11-character phone number. The number is
// sent in E.164 form with a leading plus.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	phone = strings.TrimSpace(phone)
	message = strings.TrimSpace(message)

	if len(phone) != 11 {
		return ErrInvalidRecipient
	}
	if len(message) == 0 || len(message) > maxMessageLength {
		return ErrInvalidMessage
	}
	if c.cfg.AccountSID == "" || c.cfg.AuthToken == "" {
		return ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sms: waiting for rate limiter: %w", err)
	}

	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, c.post(ctx, phone, message)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordSMSSend("breaker_open")
			logging.Warn().Err(err).Msg("sms send rejected by circuit breaker")
			return err
		}
		metrics.RecordSMSSend("error")
		return err
	}

	metrics.RecordSMSSend("ok")
	return nil
}

// post performs the Twilio Messages API call.
func (c *Client) post(ctx context.Context, phone, message string) error {
	form := url.Values{
		"From": {"+" + c.cfg.FromPhone},
		"To":   {"+" + phone},
		"Body": {message},
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sms: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms: posting to twilio: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("sms: twilio returned status %d", resp.StatusCode)
	}
	return nil
}
