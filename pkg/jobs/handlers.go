// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package jobs

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/aap-sync-service/internal/http/types"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/internal/types"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type launchRequest struct {
	TemplateName  string                 `json:"template_name"`
	ExtraVars     map[string]interface{} `json:"extra_vars,omitempty"`
	Inventory     *int64                 `json:"inventory,omitempty"`
	Limit         *string                `json:"limit,omitempty"`
	Forks         *int                   `json:"forks,omitempty"`
	Timeout       *int                   `json:"timeout,omitempty"`
	JobSliceCount *int                   `json:"job_slice_count,omitempty"`
	DiffMode      *bool                  `json:"diff_mode,omitempty"`
	Verbosity     *types.Verbosity       `json:"verbosity,omitempty"`
	Credentials   []types.Credential     `json:"credentials,omitempty"`
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/jobs/launch", a.handleLaunch)
}

func (a *API) handleLaunch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.logger.Errorf("failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	req := new(launchRequest)
	if err := json.Unmarshal(body, req); err != nil {
		a.logger.Errorf("failed to parse request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if req.TemplateName == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			httptypes.Response{
				Status:  http.StatusBadRequest,
				Message: "template_name is required",
			},
		)
		return
	}

	params := &LaunchParams{
		ExtraVars:     req.ExtraVars,
		Inventory:     req.Inventory,
		Limit:         req.Limit,
		Forks:         req.Forks,
		Timeout:       req.Timeout,
		JobSliceCount: req.JobSliceCount,
		DiffMode:      req.DiffMode,
		Verbosity:     req.Verbosity,
		Credentials:   req.Credentials,
	}

	execution, err := a.service.LaunchJob(r.Context(), req.TemplateName, params)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		httptypes.Response{
			Data:    execution,
			Message: "Job executed",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	notFound := new(TemplateNotFoundError)
	duplicate := new(DuplicateCredentialTypeError)
	execution := new(JobExecutionError)
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &duplicate):
		status = http.StatusBadRequest
	case errors.As(err, &execution):
		status = http.StatusBadGateway
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(
		httptypes.Response{
			Status:  status,
			Message: err.Error(),
		},
	)
}

func NewAPI(
	service ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
