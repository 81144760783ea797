// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer matches the *http.Server lifecycle methods the wrapper
// needs, so tests can substitute a mock.
type HTTPServer interface {
	ListenAndServe() error
	ListenAndServeTLS(certFile, keyFile string) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService adapts an HTTP server's blocking ListenAndServe to
// suture's context-aware Serve:
//
//  1. Start the listener in a goroutine
//  2. Wait for context cancellation or a listener error
//  3. On shutdown, drain connections within the configured timeout
//
// With cert and key paths set the listener terminates TLS itself;
// otherwise it serves plaintext.
type HTTPServerService struct {
	server          HTTPServer
	certFile        string
	keyFile         string
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService wraps a plaintext HTTP server.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// NewHTTPSServerService wraps a TLS-terminating HTTP server.
func NewHTTPSServerService(server HTTPServer, certFile, keyFile string, shutdownTimeout time.Duration) *HTTPServerService {
	svc := NewHTTPServerService(server, shutdownTimeout)
	svc.certFile = certFile
	svc.keyFile = keyFile
	svc.name = "https-server"
	return svc
}

// Serve implements suture.Service. http.ErrServerClosed is expected
// during shutdown and converted to nil.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if h.certFile != "" {
			err = h.server.ListenAndServeTLS(h.certFile, h.keyFile)
		} else {
			err = h.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s failed: %w", h.name, err)
		}
		return nil

	case <-ctx.Done():
		// The original context is already canceled; shutdown gets its own.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s shutdown failed: %w", h.name, err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer; suture uses it in log events.
func (h *HTTPServerService) String() string {
	return h.name
}
