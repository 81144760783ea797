// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package worker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/upcheckhq/upcheck/internal/applog"
	"github.com/upcheckhq/upcheck/internal/config"
	"github.com/upcheckhq/upcheck/internal/filestore"
	"github.com/upcheckhq/upcheck/internal/logging"
	"github.com/upcheckhq/upcheck/internal/metrics"
	"github.com/upcheckhq/upcheck/internal/models"
	"github.com/upcheckhq/upcheck/internal/sms"
)

// checksCollection is the filestore collection the worker sweeps.
const checksCollection = "checks"

// logEntry is one probe outcome appended to a check's log file.
type logEntry struct {
	Check   models.Check `json:"check"`
	Status  int          `json:"status,omitempty"`
	Error   string       `json:"error,omitempty"`
	State   string       `json:"state"`
	Alerted bool         `json:"alerted"`
	Time    int64        `json:"time"`
}

// Worker sweeps all checks on a fixed cadence, probes each target, and
// alerts the owner by SMS when a check changes state. It implements
// suture.Service.
type Worker struct {
	store  *filestore.Store
	sender sms.Sender
	logs   *applog.Logger
	cfg    config.ChecksConfig

	// probe client, shared across sweeps; per-probe deadlines come from
	// each check's timeout.
	client *http.Client

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New creates a worker over the given store, SMS sender, and log writer.
func New(store *filestore.Store, sender sms.Sender, logs *applog.Logger, cfg config.ChecksConfig) *Worker {
	return &Worker{
		store:  store,
		sender: sender,
		logs:   logs,
		cfg:    cfg,
		client: &http.Client{
			// Redirect chains count against the check's timeout, not as
			// implicit success of the original URL.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		now: time.Now,
	}
}

// Serve implements suture.Service. One sweep runs immediately on start,
// then on every tick until the context is canceled. Log rotation runs on
// its own, slower cadence.
func (w *Worker) Serve(ctx context.Context) error {
	sweep := time.NewTicker(w.cfg.Interval)
	defer sweep.Stop()

	rotateEvery := w.cfg.LogRotateInterval
	if rotateEvery <= 0 {
		rotateEvery = 24 * time.Hour
	}
	rotate := time.NewTicker(rotateEvery)
	defer rotate.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sweep.C:
			w.Sweep(ctx)
		case <-rotate.C:
			w.RotateLogs()
		}
	}
}

// String implements fmt.Stringer for supervision tree logging.
func (w *Worker) String() string {
	return "checks-worker"
}

// Sweep gathers all check documents and executes each one. A check that
// fails to load or validate is skipped with a log line; one bad document
// must not stall the rest of the sweep.
func (w *Worker) Sweep(ctx context.Context) {
	ids, err := w.store.List(ctx, checksCollection)
	if err != nil {
		logging.Error().Err(err).Msg("could not list checks for sweep")
		return
	}
	if len(ids) == 0 {
		logging.Debug().Msg("no checks to execute")
		return
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}

		var check models.Check
		if err := w.store.Read(ctx, checksCollection, id, &check); err != nil {
			logging.Warn().Str("check_id", id).Err(err).Msg("skipping unreadable check")
			continue
		}
		if err := validateCheck(check); err != nil {
			logging.Warn().Str("check_id", id).Err(err).Msg("skipping malformed check")
			continue
		}

		w.execute(ctx, check)
	}
}

// execute probes one check, persists the outcome, appends it to the
// check's log, and alerts the owner on a state transition.
func (w *Worker) execute(ctx context.Context, check models.Check) {
	start := w.now()
	status, probeErr := w.probe(ctx, check)

	state := models.CheckStateDown
	if probeErr == nil && check.IsSuccessCode(status) {
		state = models.CheckStateUp
	}

	// Only alert on a transition of a check that has run before; the
	// first probe of a new check establishes a baseline silently.
	alertWarranted := check.LastChecked != 0 && check.State != state

	previous := check
	check.State = state
	check.LastChecked = start.UnixMilli()

	outcome := state
	if probeErr != nil {
		outcome = "error"
	}
	metrics.RecordCheckExecution(outcome, time.Since(start))

	if err := w.store.Update(ctx, checksCollection, check.ID, check); err != nil {
		logging.Error().Str("check_id", check.ID).Err(err).Msg("could not persist check outcome")
		return
	}

	entry := logEntry{
		Check:   previous,
		Status:  status,
		State:   state,
		Alerted: alertWarranted,
		Time:    check.LastChecked,
	}
	if probeErr != nil {
		entry.Error = probeErr.Error()
	}
	if err := w.logs.Append(check.ID, entry); err != nil {
		logging.Error().Str("check_id", check.ID).Err(err).Msg("could not append check log entry")
	}

	if alertWarranted {
		w.alert(ctx, check)
	} else {
		logging.Debug().
			Str("check_id", check.ID).
			Str("state", state).
			Msg("check outcome unchanged, no alert needed")
	}
}

// probe performs the HTTP request a check describes and returns the
// response status code. The request is bounded by the check's timeout.
func (w *Worker) probe(ctx context.Context, check models.Check) (int, error) {
	probeCtx, cancel := context.WithTimeout(ctx, time.Duration(check.TimeoutSeconds)*time.Second)
	defer cancel()

	target := check.Protocol + "://" + check.URL
	req, err := http.NewRequestWithContext(probeCtx, strings.ToUpper(check.Method), target, nil)
	if err != nil {
		return 0, fmt.Errorf("building probe request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// alert sends the state-change SMS to the check's owner.
func (w *Worker) alert(ctx context.Context, check models.Check) {
	msg := fmt.Sprintf("Alert: your check for %s %s://%s is currently %s",
		strings.ToUpper(check.Method), check.Protocol, check.URL, check.State)

	if err := w.sender.Send(ctx, check.UserPhone, msg); err != nil {
		logging.Error().
			Str("check_id", check.ID).
			Str("phone", check.UserPhone).
			Err(err).
			Msg("could not deliver state-change alert")
		return
	}

	logging.Info().
		Str("check_id", check.ID).
		Str("state", check.State).
		Msg("state-change alert delivered")
}

// RotateLogs compresses every active check log into a timestamped
// archive and truncates the source.
func (w *Worker) RotateLogs() {
	names, err := w.logs.List(false)
	if err != nil {
		logging.Error().Err(err).Msg("could not list check logs for rotation")
		return
	}

	stamp := strconv.FormatInt(w.now().UnixMilli(), 10)
	for _, name := range names {
		if err := w.logs.Rotate(name, name+"-"+stamp); err != nil {
			logging.Error().Str("log", name).Err(err).Msg("could not rotate check log")
			continue
		}
		logging.Debug().Str("log", name).Msg("check log rotated")
	}
}

// validateCheck mirrors the handler-side payload rules so documents
// edited out of band cannot crash a sweep.
func validateCheck(check models.Check) error {
	if len(check.ID) != models.CheckIDLength {
		return fmt.Errorf("invalid check id %q", check.ID)
	}
	if len(check.UserPhone) != 11 {
		return fmt.Errorf("invalid owner phone %q", check.UserPhone)
	}
	if check.Protocol != "http" && check.Protocol != "https" {
		return fmt.Errorf("invalid protocol %q", check.Protocol)
	}
	if check.URL == "" {
		return fmt.Errorf("empty url")
	}
	switch check.Method {
	case "get", "post", "put", "delete":
	default:
		return fmt.Errorf("invalid method %q", check.Method)
	}
	if len(check.SuccessCodes) == 0 {
		return fmt.Errorf("no success codes")
	}
	if check.TimeoutSeconds < 1 || check.TimeoutSeconds > 5 {
		return fmt.Errorf("timeout %d out of range", check.TimeoutSeconds)
	}
	return nil
}
