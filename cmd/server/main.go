// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

// Package main is the entry point for the Upcheck server.
//
// Upcheck is a self-contained uptime monitoring API: users register with
// a phone number, authenticate with short-lived bearer tokens, and
// maintain up to a handful of HTTP(S) uptime checks. A background worker
// probes every check on a fixed cadence and texts the owner whenever a
// check changes state. All state lives in a flat JSON document store on
// local disk; there is no external database.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment baseline plus YAML file and env vars (Koanf v2)
//  2. Document store: one directory per collection under the store base dir
//  3. Services: hashing, tokens, SMS delivery, check logs
//  4. Supervision tree: HTTP/HTTPS listeners, checks worker, admin console
//
// # Configuration
//
// The ENVIRONMENT variable selects the staging (default) or production
// baseline; individual settings are overridable via environment
// variables (HASHING_SECRET, SERVER_HTTP_PORT, MAX_CHECKS, ...) or a
// YAML file named by CONFIG_PATH.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the listeners drain
// in-flight requests within the shutdown timeout, then the worker and
// console stop. Typing "exit" in the admin console does the same.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/upcheckhq/upcheck/internal/api"
	"github.com/upcheckhq/upcheck/internal/applog"
	"github.com/upcheckhq/upcheck/internal/config"
	"github.com/upcheckhq/upcheck/internal/console"
	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/hashing"
	"github.com/upcheckhq/upcheck/internal/logging"
	"github.com/upcheckhq/upcheck/internal/sms"
	"github.com/upcheckhq/upcheck/internal/supervisor"
	"github.com/upcheckhq/upcheck/internal/supervisor/services"
	"github.com/upcheckhq/upcheck/internal/token"
	"github.com/upcheckhq/upcheck/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; configuration is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.EnvName).
		Int("http_port", cfg.Server.HTTPPort).
		Int("https_port", cfg.Server.HTTPSPort).
		Str("store_dir", cfg.Store.BaseDir).
		Msg("Configuration loaded")

	store, err := filestore.New(cfg.Store.BaseDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize document store")
	}

	logs, err := applog.New(filepath.Join(cfg.Store.BaseDir, ".logs"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize check log store")
	}

	hasher, err := hashing.New(cfg.Hashing.Secret)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize hashing service")
	}

	tokens := token.NewService(store)
	smsClient := sms.NewClient(cfg.SMS)
	if cfg.SMS.AccountSID == "" {
		logging.Warn().Msg("Twilio credentials not configured, state-change alerts are disabled")
	}

	handler := api.NewHandler(store, tokens, hasher, cfg)
	routes := api.NewRouter(handler).Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog speaks slog; bridge it to zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler: routes,
	}
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", httpServer.Addr).Msg("HTTP listener added")

	if cfg.TLSEnabled() {
		httpsServer := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPSPort),
			Handler: routes,
		}
		tree.AddAPIService(services.NewHTTPSServerService(
			httpsServer, cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile, cfg.Server.ShutdownTimeout))
		logging.Info().Str("addr", httpsServer.Addr).Msg("HTTPS listener added")
	} else {
		logging.Info().Msg("TLS cert/key not configured, HTTPS listener disabled")
	}

	tree.AddBackgroundService(worker.New(store, smsClient, logs, cfg.Checks))
	tree.AddBackgroundService(console.New(store, logs, os.Stdin, os.Stdout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
