// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/aap-sync-service/internal/db"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/pkg/jobs"
	"github.com/canonical/aap-sync-service/pkg/metrics"
	"github.com/canonical/aap-sync-service/pkg/resources"
	"github.com/canonical/aap-sync-service/pkg/status"
	syncapi "github.com/canonical/aap-sync-service/pkg/sync"
)

func NewRouter(
	apiToken string,
	syncService syncapi.ServiceInterface,
	resourceService resources.ServiceInterface,
	jobService jobs.ServiceInterface,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	if apiToken != "" {
		middlewares = append(middlewares, middlewareAPIToken(apiToken, logger))
	}

	if dbClient != nil {
		middlewares = append(middlewares, db.TransactionMiddleware(dbClient, logger))
	}

	middlewares = append(
		middlewares,
		middleware.RequestLogger(logging.NewLogFormatter(logger)), // LogFormatter will only work if logger is set to DEBUG level
	)

	router.Use(middlewares...)

	syncapi.NewAPI(syncService, tracer, monitor, logger).RegisterEndpoints(router)
	resources.NewAPI(resourceService, tracer, monitor, logger).RegisterEndpoints(router)
	jobs.NewAPI(jobService, tracer, monitor, logger).RegisterEndpoints(router)
	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
