// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Manual mocks for tracing and monitoring to avoid code generation issues

type mockTracer struct{}

func (m *mockTracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

type mockMonitor struct{}

func (m *mockMonitor) GetService() string { return "test-service" }
func (m *mockMonitor) SetResponseTimeMetric(labels map[string]string, value float64) error {
	return nil
}
func (m *mockMonitor) SetDependencyAvailability(labels map[string]string, value float64) error {
	return nil
}
