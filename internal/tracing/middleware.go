// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
)

type Middleware struct {
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// OpenTelemetry wraps the whole router so every request carries a span.
func (m *Middleware) OpenTelemetry(handler http.Handler) http.Handler {
	return otelhttp.NewHandler(handler, m.monitor.GetService())
}

func NewMiddleware(monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.monitor = monitor
	m.logger = logger

	return m
}
