// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently in flight",
		},
	)

	// Document store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filestore_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestore_operation_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation", "collection"},
	)

	// Check worker metrics
	CheckExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "check_executions_total",
			Help: "Total number of executed uptime checks",
		},
		[]string{"outcome"}, // "up", "down", "error"
	)

	CheckExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "check_execution_duration_seconds",
			Help:    "Duration of uptime check probes in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Outbound SMS metrics
	SMSSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_sends_total",
			Help: "Total number of outbound SMS delivery attempts",
		},
		[]string{"status"}, // "ok", "error", "breaker_open"
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records one document store operation.
func RecordStoreOperation(operation, collection string, err error, duration time.Duration) {
	StoreOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordCheckExecution records one uptime check probe.
func RecordCheckExecution(outcome string, duration time.Duration) {
	CheckExecutionsTotal.WithLabelValues(outcome).Inc()
	CheckExecutionDuration.Observe(duration.Seconds())
}

// RecordSMSSend records one outbound SMS attempt.
func RecordSMSSend(status string) {
	SMSSendsTotal.WithLabelValues(status).Inc()
}
