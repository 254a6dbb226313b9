// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/canonical/aap-sync-service/internal/logging"
)

var _ TracingInterface = (*Tracer)(nil)

type Config struct {
	Enabled      bool
	GRPCEndpoint string
	HTTPEndpoint string

	logger logging.LoggerInterface
}

func NewConfig(enabled bool, grpcEndpoint, httpEndpoint string, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.Enabled = enabled
	c.GRPCEndpoint = grpcEndpoint
	c.HTTPEndpoint = httpEndpoint
	c.logger = logger

	return c
}

type Tracer struct {
	tracer trace.Tracer

	logger logging.LoggerInterface
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}

func NewTracer(config *Config) *Tracer {
	t := new(Tracer)

	t.logger = config.logger

	if !config.Enabled {
		t.tracer = noop.NewTracerProvider().Tracer("aap-sync-service")
		return t
	}

	exporter, err := newExporter(config)
	if err != nil {
		config.logger.Errorf("failed to create otlp exporter, falling back to noop tracer: %v", err)
		t.tracer = noop.NewTracerProvider().Tracer("aap-sync-service")
		return t
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)

	otel.SetTracerProvider(provider)

	t.tracer = provider.Tracer("aap-sync-service")

	return t
}

func newExporter(config *Config) (*otlptrace.Exporter, error) {
	ctx := context.Background()

	if config.GRPCEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(config.GRPCEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	}

	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(config.HTTPEndpoint),
		otlptracehttp.WithInsecure(),
	)
}
