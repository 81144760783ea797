// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/upcheckhq/upcheck/internal/applog"
	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/logging"
	"github.com/upcheckhq/upcheck/internal/models"
)

// Filestore collections the console reads from.
const (
	usersCollection  = "users"
	checksCollection = "checks"
)

// Console is an interactive admin shell reading commands from an input
// stream, normally stdin. It implements suture.Service; the exit command
// terminates the whole supervision tree for a clean process shutdown.
type Console struct {
	store *filestore.Store
	logs  *applog.Logger

	in  io.Reader
	out io.Writer

	started time.Time
}

// New creates a console bound to the given streams.
func New(store *filestore.Store, logs *applog.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		store:   store,
		logs:    logs,
		in:      in,
		out:     out,
		started: time.Now(),
	}
}

// Serve implements suture.Service. It reads one command per line until
// the input stream ends, the context is canceled, or the operator exits.
func (c *Console) Serve(ctx context.Context) error {
	lines := make(chan string, 1)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			// done lets the goroutine exit once Serve has returned and
			// nobody is left to receive, instead of leaking on restart.
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	c.printf("")
	c.printf("admin console ready, type 'help' for a command list")
	c.prompt()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-scanErr:
			// Input closed (e.g. stdin detached in a container). The
			// console stays down; the rest of the tree keeps running.
			if err != nil {
				logging.Warn().Err(err).Msg("console input failed")
			}
			return suture.ErrDoNotRestart
		case line := <-lines:
			if c.Dispatch(ctx, line) {
				return suture.ErrTerminateSupervisorTree
			}
			c.prompt()
		}
	}
}

// String implements fmt.Stringer for supervision tree logging.
func (c *Console) String() string {
	return "admin-console"
}

// Dispatch routes one input line to its command. The returned bool is
// true when the operator asked to exit.
func (c *Console) Dispatch(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	lower := strings.ToLower(line)
	switch {
	case lower == "exit":
		return true
	case lower == "man", lower == "help":
		c.help()
	case lower == "stats":
		c.stats()
	case lower == "list users":
		c.listUsers(ctx)
	case strings.HasPrefix(lower, "more user info"):
		c.userInfo(ctx, argument(line))
	case strings.HasPrefix(lower, "list checks"):
		c.listChecks(ctx, lower)
	case strings.HasPrefix(lower, "more check info"):
		c.checkInfo(ctx, argument(line))
	case lower == "list logs":
		c.listLogs()
	case strings.HasPrefix(lower, "more log info"):
		c.logInfo(argument(line))
	default:
		c.printf("unknown command %q, type 'help' for a command list", line)
	}
	return false
}

// argument extracts the --value trailing a command, if any.
func argument(line string) string {
	if idx := strings.Index(line, "--"); idx >= 0 {
		return strings.TrimSpace(line[idx+2:])
	}
	return ""
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) help() {
	commands := []struct{ name, desc string }{
		{"exit", "shut the application down"},
		{"man / help", "show this help page"},
		{"stats", "operating statistics of the running process"},
		{"list users", "all registered users"},
		{"more user info --{phone}", "details of a specific user"},
		{"list checks --up --down", "all checks, optionally filtered by state"},
		{"more check info --{id}", "details of a specific check"},
		{"list logs", "all rotated check log archives"},
		{"more log info --{name}", "entries of a rotated log archive"},
	}

	c.printf("")
	for _, cmd := range commands {
		c.printf("  %-28s %s", cmd.name, cmd.desc)
	}
	c.printf("")
}

// stats prints runtime statistics of the process.
func (c *Console) stats() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.printf("")
	c.printf("  %-24s %s", "Uptime:", time.Since(c.started).Round(time.Second))
	c.printf("  %-24s %d", "CPU Count:", runtime.NumCPU())
	c.printf("  %-24s %d", "Goroutines:", runtime.NumGoroutine())
	c.printf("  %-24s %.1f MiB", "Heap In Use:", float64(mem.HeapInuse)/(1<<20))
	c.printf("  %-24s %.1f MiB", "Total Allocated:", float64(mem.TotalAlloc)/(1<<20))
	c.printf("  %-24s %d", "GC Runs:", mem.NumGC)
	c.printf("")
}

func (c *Console) listUsers(ctx context.Context) {
	phones, err := c.store.List(ctx, usersCollection)
	if err != nil {
		c.printf("could not list users: %v", err)
		return
	}
	if len(phones) == 0 {
		c.printf("no registered users")
		return
	}

	c.printf("")
	for _, phone := range phones {
		var user models.User
		if err := c.store.Read(ctx, usersCollection, phone, &user); err != nil {
			c.printf("  %s (unreadable: %v)", phone, err)
			continue
		}
		c.printf("  Name: %s %s  Phone: %s  Checks: %d",
			user.FirstName, user.LastName, user.Phone, len(user.Checks))
	}
	c.printf("")
}

func (c *Console) userInfo(ctx context.Context, phone string) {
	if phone == "" {
		c.printf("usage: more user info --{phone}")
		return
	}

	var user models.User
	if err := c.store.Read(ctx, usersCollection, phone, &user); err != nil {
		c.printf("could not read user %s: %v", phone, err)
		return
	}

	c.printf("")
	c.printf("  First Name: %s", user.FirstName)
	c.printf("  Last Name:  %s", user.LastName)
	c.printf("  Phone:      %s", user.Phone)
	c.printf("  TOS Agreed: %t", user.TOSAgreement)
	c.printf("  Checks:     %s", strings.Join(user.Checks, ", "))
	c.printf("")
}

// listChecks prints all checks. The --up and --down flags narrow the
// listing; a check that has never run counts as down.
func (c *Console) listChecks(ctx context.Context, lower string) {
	wantUp := strings.Contains(lower, "--up")
	wantDown := strings.Contains(lower, "--down")
	if !wantUp && !wantDown {
		wantUp, wantDown = true, true
	}

	ids, err := c.store.List(ctx, checksCollection)
	if err != nil {
		c.printf("could not list checks: %v", err)
		return
	}
	if len(ids) == 0 {
		c.printf("no checks")
		return
	}

	c.printf("")
	for _, id := range ids {
		var check models.Check
		if err := c.store.Read(ctx, checksCollection, id, &check); err != nil {
			c.printf("  %s (unreadable: %v)", id, err)
			continue
		}

		state := check.State
		if state == "" {
			state = models.CheckStateDown
		}
		if (state == models.CheckStateUp && !wantUp) || (state == models.CheckStateDown && !wantDown) {
			continue
		}
		c.printf("  ID: %s  %s %s://%s  State: %s",
			check.ID, strings.ToUpper(check.Method), check.Protocol, check.URL, state)
	}
	c.printf("")
}

func (c *Console) checkInfo(ctx context.Context, id string) {
	if id == "" {
		c.printf("usage: more check info --{id}")
		return
	}

	var check models.Check
	if err := c.store.Read(ctx, checksCollection, id, &check); err != nil {
		c.printf("could not read check %s: %v", id, err)
		return
	}

	c.printf("")
	c.printf("  ID:            %s", check.ID)
	c.printf("  Owner:         %s", check.UserPhone)
	c.printf("  Target:        %s %s://%s", strings.ToUpper(check.Method), check.Protocol, check.URL)
	c.printf("  Success Codes: %v", check.SuccessCodes)
	c.printf("  Timeout:       %ds", check.TimeoutSeconds)
	c.printf("  State:         %s", check.State)
	if check.LastChecked > 0 {
		c.printf("  Last Checked:  %s", time.UnixMilli(check.LastChecked).UTC().Format(time.RFC3339))
	}
	c.printf("")
}

// listLogs prints the rotated archives only; active logs are in flux and
// read through the worker's rotation instead.
func (c *Console) listLogs() {
	all, err := c.logs.List(true)
	if err != nil {
		c.printf("could not list logs: %v", err)
		return
	}

	c.printf("")
	var found bool
	for _, name := range all {
		// Archive names carry the rotation timestamp after a dash.
		if strings.Contains(name, "-") {
			c.printf("  %s", name)
			found = true
		}
	}
	if !found {
		c.printf("  no rotated logs")
	}
	c.printf("")
}

func (c *Console) logInfo(name string) {
	if name == "" {
		c.printf("usage: more log info --{name}")
		return
	}

	content, err := c.logs.ReadCompressed(name)
	if err != nil {
		c.printf("could not read log %s: %v", name, err)
		return
	}

	c.printf("")
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if line != "" {
			c.printf("  %s", line)
		}
	}
	c.printf("")
}
