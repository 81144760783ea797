// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/upcheck/config.yaml",
	"/etc/upcheck/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvironmentEnvVar selects the named environment (staging, production).
const EnvironmentEnvVar = "ENVIRONMENT"

// Load builds the configuration from layered sources, highest priority last:
//
//  1. Baseline for the environment named by ENVIRONMENT (default: staging)
//  2. Optional YAML config file
//  3. Environment variables (HASHING_SECRET, SERVER_HTTP_PORT, ...)
func Load() (*Config, error) {
	envName := strings.ToLower(os.Getenv(EnvironmentEnvVar))
	return loadEnvironment(envName)
}

func loadEnvironment(envName string) (*Config, error) {
	envs := environments()
	base, ok := envs[envName]
	if !ok {
		base = envs["staging"]
	}

	k := koanf.New(".")

	// Layer 1: baseline defaults for the selected environment
	if err := k.Load(structs.Provider(base, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// findConfigFile locates the config file, if any.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings translates environment variable names to koanf paths.
// Only listed variables participate; everything else in the process
// environment is ignored.
var envMappings = map[string]string{
	"server_host":              "server.host",
	"server_http_port":         "server.http_port",
	"server_https_port":        "server.https_port",
	"server_tls_cert_file":     "server.tls_cert_file",
	"server_tls_key_file":      "server.tls_key_file",
	"server_shutdown_timeout":  "server.shutdown_timeout",
	"server_rate_limit_reqs":   "server.rate_limit_reqs",
	"server_rate_limit_window": "server.rate_limit_window",

	"store_base_dir": "store.base_dir",

	"hashing_secret": "hashing.secret",

	"max_checks":              "checks.max",
	"checks_interval":         "checks.interval",
	"checks_log_rotate_every": "checks.log_rotate_interval",

	"sms_account_sid": "sms.account_sid",
	"sms_auth_token":  "sms.auth_token",
	"sms_from_phone":  "sms.from_phone",
	"sms_timeout":     "sms.timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Returning "" drops the variable.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
