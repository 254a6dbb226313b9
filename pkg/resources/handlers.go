// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/aap-sync-service/internal/aap"
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

type createJobTemplateBody struct {
	Template   *types.JobTemplate `json:"template"`
	Credential *types.Credential  `json:"credential,omitempty"`
	SCMType    string             `json:"scm_type,omitempty"`
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/projects", a.handleCreateProject)
	mux.Delete("/api/v0/projects", a.handleDeleteProject)
	mux.Post("/api/v0/execution-environments", a.handleCreateExecutionEnvironment)
	mux.Delete("/api/v0/execution-environments", a.handleDeleteExecutionEnvironment)
	mux.Post("/api/v0/job-templates", a.handleCreateJobTemplate)
	mux.Delete("/api/v0/job-templates", a.handleDeleteJobTemplate)
}

func (a *API) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	project := new(types.Project)
	if !a.decode(w, r, project) {
		return
	}

	created, err := a.service.CreateProject(r.Context(), project, deleteIfExist(r))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeCreated(w, created, "Project created")
}

func (a *API) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name, organization, ok := a.deleteScope(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteProjectIfExists(r.Context(), name, organization); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeDeleted(w, "Project deleted if present")
}

func (a *API) handleCreateExecutionEnvironment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ee := new(types.ExecutionEnvironment)
	if !a.decode(w, r, ee) {
		return
	}

	created, err := a.service.CreateExecutionEnvironment(r.Context(), ee, deleteIfExist(r))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeCreated(w, created, "Execution environment created")
}

func (a *API) handleDeleteExecutionEnvironment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name, organization, ok := a.deleteScope(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteExecutionEnvironmentIfExists(r.Context(), name, organization); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeDeleted(w, "Execution environment deleted if present")
}

func (a *API) handleCreateJobTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body := new(createJobTemplateBody)
	if !a.decode(w, r, body) {
		return
	}

	if body.Template == nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			httptypes.Response{
				Status:  http.StatusBadRequest,
				Message: "template is required",
			},
		)
		return
	}

	created, err := a.service.CreateJobTemplate(r.Context(), &CreateJobTemplateRequest{
		Template:      body.Template,
		Credential:    body.Credential,
		SCMType:       body.SCMType,
		DeleteIfExist: deleteIfExist(r),
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeCreated(w, created, "Job template created")
}

func (a *API) handleDeleteJobTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name, organization, ok := a.deleteScope(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteJobTemplateIfExists(r.Context(), name, organization); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeDeleted(w, "Job template deleted if present")
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.logger.Errorf("failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return false
	}

	if err := json.Unmarshal(body, into); err != nil {
		a.logger.Errorf("failed to parse request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return false
	}

	return true
}

func (a *API) deleteScope(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	name := r.URL.Query().Get("name")
	organization, err := strconv.ParseInt(r.URL.Query().Get("organization"), 10, 64)

	if name == "" || err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			httptypes.Response{
				Status:  http.StatusBadRequest,
				Message: "name and organization query parameters are required",
			},
		)
		return "", 0, false
	}

	return name, organization, true
}

func (a *API) writeCreated(w http.ResponseWriter, data interface{}, message string) {
	w.WriteHeader(http.StatusCreated)

	json.NewEncoder(w).Encode(
		httptypes.Response{
			Data:    data,
			Message: message,
			Status:  http.StatusCreated,
		},
	)
}

func (a *API) writeDeleted(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		httptypes.Response{
			Message: message,
			Status:  http.StatusOK,
		},
	)
}

// writeError maps the transport error taxonomy onto HTTP statuses.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	permission := new(aap.PermissionError)
	validation := new(aap.ValidationError)
	switch {
	case errors.As(err, &permission):
		status = http.StatusForbidden
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(
		httptypes.Response{
			Status:  status,
			Message: err.Error(),
		},
	)
}

func deleteIfExist(r *http.Request) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get("delete_if_exist"))
	return err == nil && value
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
