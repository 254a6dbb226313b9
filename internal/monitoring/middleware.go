// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/aap-sync-service/internal/logging"
)

type Middleware struct {
	monitor MonitorInterface
	logger  logging.LoggerInterface
}

// ResponseTime records per-route response time with status labels.
func (m *Middleware) ResponseTime() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			labels := map[string]string{
				"route":  route,
				"method": r.Method,
				"status": fmt.Sprintf("%d", ww.Status()),
			}

			if err := m.monitor.SetResponseTimeMetric(labels, time.Since(start).Seconds()); err != nil {
				m.logger.Errorf("failed to set response time metric: %v", err)
			}
		})
	}
}

func NewMiddleware(monitor MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.monitor = monitor
	m.logger = logger

	return m
}
