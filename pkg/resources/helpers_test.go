// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"fmt"
	"net/url"

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

type mockTransport struct {
	baseURL string

	getResponses  map[string][]string
	postResponses map[string]string

	getCalls    []string
	postCalls   []string
	deleteCalls []string
}

func newMockTransport() *mockTransport {
	t := new(mockTransport)

	t.baseURL = "https://aap.example.com"
	t.getResponses = make(map[string][]string)
	t.postResponses = make(map[string]string)

	return t
}

func (t *mockTransport) Get(ctx context.Context, path string) ([]byte, error) {
	t.getCalls = append(t.getCalls, path)

	queued, ok := t.getResponses[path]
	if !ok || len(queued) == 0 {
		return nil, fmt.Errorf("unexpected GET %s", path)
	}

	response := queued[0]
	if len(queued) > 1 {
		t.getResponses[path] = queued[1:]
	}

	return []byte(response), nil
}

func (t *mockTransport) GetAbsolute(ctx context.Context, fullURL string) ([]byte, error) {
	return t.Get(ctx, fullURL)
}

func (t *mockTransport) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	t.postCalls = append(t.postCalls, path)

	response, ok := t.postResponses[path]
	if !ok {
		return nil, fmt.Errorf("unexpected POST %s", path)
	}

	return []byte(response), nil
}

func (t *mockTransport) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return nil, fmt.Errorf("unexpected PostForm %s", path)
}

func (t *mockTransport) Delete(ctx context.Context, path string) error {
	t.deleteCalls = append(t.deleteCalls, path)
	return nil
}

func (t *mockTransport) BaseURL() string { return t.baseURL }
