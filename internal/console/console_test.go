// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/upcheckhq/upcheck/internal/applog"
	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/models"
)

func newTestConsole(t *testing.T) (*Console, *filestore.Store, *applog.Logger, *bytes.Buffer) {
	t.Helper()

	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	logs, err := applog.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating applog: %v", err)
	}

	var out bytes.Buffer
	return New(store, logs, strings.NewReader(""), &out), store, logs, &out
}

func TestServeStopsScannerOnCancel(t *testing.T) {
	c, _, _, _ := newTestConsole(t)
	pr, pw := io.Pipe()
	c.in = pr

	baseline := runtime.NumGoroutine()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	// A line arriving after Serve has returned is consumed and dropped;
	// once the input closes, the scanner goroutine must exit instead of
	// blocking forever on a send nobody receives.
	if _, err := pw.Write([]byte("stats\n")); err != nil {
		t.Fatalf("writing after shutdown: %v", err)
	}
	pw.Close()

	deadline := time.After(2 * time.Second)
	for runtime.NumGoroutine() > baseline {
		select {
		case <-deadline:
			t.Fatalf("goroutines = %d, want <= %d; scanner goroutine leaked", runtime.NumGoroutine(), baseline)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatchExit(t *testing.T) {
	c, _, _, _ := newTestConsole(t)
	if !c.Dispatch(context.Background(), "exit") {
		t.Error("exit not recognized")
	}
	if c.Dispatch(context.Background(), "list users") {
		t.Error("list users treated as exit")
	}
}

func TestDispatchHelp(t *testing.T) {
	c, _, _, out := newTestConsole(t)

	for _, cmd := range []string{"help", "man", "HELP"} {
		out.Reset()
		c.Dispatch(context.Background(), cmd)
		if !strings.Contains(out.String(), "list users") {
			t.Errorf("%s output missing command list: %q", cmd, out.String())
		}
	}
}

func TestDispatchUnknown(t *testing.T) {
	c, _, _, out := newTestConsole(t)
	c.Dispatch(context.Background(), "make me a sandwich")
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("output = %q", out.String())
	}
}

func TestStats(t *testing.T) {
	c, _, _, out := newTestConsole(t)
	c.Dispatch(context.Background(), "stats")
	for _, want := range []string{"Uptime:", "CPU Count:", "Goroutines:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats output missing %q: %q", want, out.String())
		}
	}
}

func TestListUsersAndUserInfo(t *testing.T) {
	c, store, _, out := newTestConsole(t)
	ctx := context.Background()

	user := models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "15551234567",
		TOSAgreement: true,
		Checks:       []string{"check1"},
	}
	if err := store.Create(ctx, usersCollection, user.Phone, user); err != nil {
		t.Fatalf("planting user: %v", err)
	}

	c.Dispatch(ctx, "list users")
	if !strings.Contains(out.String(), "Ada Lovelace") || !strings.Contains(out.String(), "15551234567") {
		t.Errorf("list users output = %q", out.String())
	}

	out.Reset()
	c.Dispatch(ctx, "more user info --15551234567")
	if !strings.Contains(out.String(), "First Name: Ada") || !strings.Contains(out.String(), "check1") {
		t.Errorf("user info output = %q", out.String())
	}

	out.Reset()
	c.Dispatch(ctx, "more user info")
	if !strings.Contains(out.String(), "usage:") {
		t.Errorf("missing-arg output = %q", out.String())
	}
}

func TestListChecksFilters(t *testing.T) {
	c, store, _, out := newTestConsole(t)
	ctx := context.Background()

	up := models.Check{
		ID: strings.Repeat("u", 20), UserPhone: "15551234567",
		Protocol: "http", URL: "up.example.com", Method: "get",
		SuccessCodes: []int{200}, TimeoutSeconds: 3, State: models.CheckStateUp,
	}
	down := models.Check{
		ID: strings.Repeat("d", 20), UserPhone: "15551234567",
		Protocol: "https", URL: "down.example.com", Method: "get",
		SuccessCodes: []int{200}, TimeoutSeconds: 3, State: models.CheckStateDown,
	}
	never := models.Check{
		ID: strings.Repeat("n", 20), UserPhone: "15551234567",
		Protocol: "http", URL: "never.example.com", Method: "get",
		SuccessCodes: []int{200}, TimeoutSeconds: 3,
	}
	for _, check := range []models.Check{up, down, never} {
		if err := store.Create(ctx, checksCollection, check.ID, check); err != nil {
			t.Fatalf("planting check: %v", err)
		}
	}

	c.Dispatch(ctx, "list checks")
	for _, want := range []string{"up.example.com", "down.example.com", "never.example.com"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("unfiltered listing missing %s: %q", want, out.String())
		}
	}

	out.Reset()
	c.Dispatch(ctx, "list checks --up")
	if !strings.Contains(out.String(), "up.example.com") {
		t.Errorf("--up listing missing up check: %q", out.String())
	}
	if strings.Contains(out.String(), "down.example.com") || strings.Contains(out.String(), "never.example.com") {
		t.Errorf("--up listing includes down checks: %q", out.String())
	}

	// A check that has never run counts as down.
	out.Reset()
	c.Dispatch(ctx, "list checks --down")
	if !strings.Contains(out.String(), "never.example.com") {
		t.Errorf("--down listing missing never-run check: %q", out.String())
	}
}

func TestCheckInfo(t *testing.T) {
	c, store, _, out := newTestConsole(t)
	ctx := context.Background()

	check := models.Check{
		ID: strings.Repeat("c", 20), UserPhone: "15551234567",
		Protocol: "https", URL: "example.com", Method: "put",
		SuccessCodes: []int{200, 201}, TimeoutSeconds: 4, State: models.CheckStateUp,
	}
	if err := store.Create(ctx, checksCollection, check.ID, check); err != nil {
		t.Fatalf("planting check: %v", err)
	}

	c.Dispatch(ctx, "more check info --"+check.ID)
	for _, want := range []string{check.ID, "PUT https://example.com", "[200 201]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("check info missing %q: %q", want, out.String())
		}
	}
}

func TestListLogsAndLogInfo(t *testing.T) {
	c, _, logs, out := newTestConsole(t)
	ctx := context.Background()

	if err := logs.Append("abc", map[string]string{"state": "up"}); err != nil {
		t.Fatalf("seeding log: %v", err)
	}
	if err := logs.Rotate("abc", "abc-1756700000"); err != nil {
		t.Fatalf("rotating log: %v", err)
	}

	c.Dispatch(ctx, "list logs")
	if !strings.Contains(out.String(), "abc-1756700000") {
		t.Errorf("list logs output = %q", out.String())
	}
	// Active logs without a rotation stamp stay hidden.
	if strings.Contains(out.String(), "  abc\n") {
		t.Errorf("active log leaked into listing: %q", out.String())
	}

	out.Reset()
	c.Dispatch(ctx, "more log info --abc-1756700000")
	if !strings.Contains(out.String(), `"state":"up"`) {
		t.Errorf("log info output = %q", out.String())
	}
}
