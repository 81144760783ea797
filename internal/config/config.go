// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	// EnvName is the selected environment: staging or production.
	EnvName string `koanf:"env_name"`

	Server  ServerConfig  `koanf:"server"`
	Store   StoreConfig   `koanf:"store"`
	Hashing HashingConfig `koanf:"hashing"`
	Checks  ChecksConfig  `koanf:"checks"`
	SMS     SMSConfig     `koanf:"sms"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds listener settings for the plaintext and TLS servers.
type ServerConfig struct {
	Host      string `koanf:"host"`
	HTTPPort  int    `koanf:"http_port"`
	HTTPSPort int    `koanf:"https_port"`

	// TLSCertFile and TLSKeyFile enable the HTTPS listener when both are
	// set and readable. TLS termination itself is delegated to net/http.
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs requests per RateLimitWindow, enforced per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// StoreConfig holds document store settings.
type StoreConfig struct {
	// BaseDir is the root directory holding one subdirectory per collection.
	BaseDir string `koanf:"base_dir"`
}

// HashingConfig holds the server-side hashing secret.
type HashingConfig struct {
	Secret string `koanf:"secret"`
}

// ChecksConfig holds uptime check limits and worker cadence.
type ChecksConfig struct {
	// Max is the number of checks a single user may own.
	Max int `koanf:"max"`

	// Interval is how often the worker gathers and executes all checks.
	Interval time.Duration `koanf:"interval"`

	// LogRotateInterval is how often the worker compresses check logs.
	LogRotateInterval time.Duration `koanf:"log_rotate_interval"`
}

// SMSConfig holds outbound SMS (Twilio) credentials.
type SMSConfig struct {
	AccountSID string        `koanf:"account_sid"`
	AuthToken  string        `koanf:"auth_token"`
	FromPhone  string        `koanf:"from_phone"`
	Timeout    time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// environments maps an environment name to its baseline configuration.
// Selection is by the ENVIRONMENT variable; anything unset or unrecognized
// falls back to staging.
func environments() map[string]*Config {
	staging := &Config{
		EnvName: "staging",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        3000,
			HTTPSPort:       3001,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Store: StoreConfig{
			BaseDir: ".data",
		},
		Hashing: HashingConfig{
			Secret: "thisIsASecret",
		},
		Checks: ChecksConfig{
			Max:               5,
			Interval:          time.Minute,
			LogRotateInterval: 24 * time.Hour,
		},
		SMS: SMSConfig{
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "debug",
			Format: "console",
		},
	}

	production := &Config{
		EnvName: "production",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        5000,
			HTTPSPort:       5001,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Store: StoreConfig{
			BaseDir: "/data/upcheck",
		},
		Hashing: HashingConfig{
			Secret: "thisIsASecret",
		},
		Checks: ChecksConfig{
			Max:               5,
			Interval:          time.Minute,
			LogRotateInterval: 24 * time.Hour,
		},
		SMS: SMSConfig{
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	return map[string]*Config{
		"staging":    staging,
		"production": production,
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if c.Hashing.Secret == "" {
		return fmt.Errorf("hashing secret must not be empty")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.Server.HTTPSPort <= 0 || c.Server.HTTPSPort > 65535 {
		return fmt.Errorf("invalid https port %d", c.Server.HTTPSPort)
	}
	if c.Server.HTTPPort == c.Server.HTTPSPort {
		return fmt.Errorf("http and https ports must differ (both %d)", c.Server.HTTPPort)
	}
	if c.Store.BaseDir == "" {
		return fmt.Errorf("store base dir must not be empty")
	}
	if c.Checks.Max <= 0 {
		return fmt.Errorf("checks max must be positive, got %d", c.Checks.Max)
	}
	if c.Checks.Interval <= 0 {
		return fmt.Errorf("checks interval must be positive, got %s", c.Checks.Interval)
	}
	return nil
}

// TLSEnabled reports whether the HTTPS listener should be started.
func (c *Config) TLSEnabled() bool {
	return c.Server.TLSCertFile != "" && c.Server.TLSKeyFile != ""
}
