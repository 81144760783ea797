// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package supervisor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// countingService records how often it is started.
type countingService struct {
	starts atomic.Int32
	block  chan struct{}
}

func (s *countingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.block:
		return nil
	}
}

func TestTreeRunsServices(t *testing.T) {
	tree := NewTree(slog.Default(), DefaultTreeConfig())

	apiSvc := &countingService{block: make(chan struct{})}
	bgSvc := &countingService{block: make(chan struct{})}
	tree.AddAPIService(apiSvc)
	tree.AddBackgroundService(bgSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for apiSvc.starts.Load() == 0 || bgSvc.starts.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("services not started: api=%d bg=%d", apiSvc.starts.Load(), bgSvc.starts.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}
}

func TestTreeRestartsCrashedService(t *testing.T) {
	cfg := DefaultTreeConfig()
	cfg.FailureBackoff = 10 * time.Millisecond
	tree := NewTree(slog.Default(), cfg)

	// A service that returns nil is treated as a normal termination and
	// restarted by suture.
	svc := &countingService{block: make(chan struct{})}
	close(svc.block)
	tree.AddBackgroundService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for svc.starts.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("service restarted %d times, want >= 2", svc.starts.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-errCh
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 || cfg.FailureDecay != 30.0 {
		t.Errorf("unexpected failure parameters: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %s", cfg.ShutdownTimeout)
	}
}
