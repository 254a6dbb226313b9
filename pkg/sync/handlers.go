// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/aap-sync-service/internal/http/types"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type reconcileUserRequest struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/sync", a.handleFullSync)
	mux.Post("/api/v0/sync/users", a.handleReconcileUser)
	mux.Get("/api/v0/sync/status", a.handleStatus)

	mux.Get("/api/v0/organizations", a.handleListOrganizations)
	mux.Get("/api/v0/organizations/{org_id}/teams", a.handleListTeams)
	mux.Get("/api/v0/users/{user_id}/groups", a.handleUserGroups)
}

func (a *API) handleFullSync(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	run, err := a.service.FullSync(r.Context())
	if err != nil {
		a.logger.Errorf("full sync failed: %v", err)

		status := http.StatusBadGateway
		rr := types.Response{
			Status:  status,
			Message: err.Error(),
		}
		if run != nil {
			rr.Data = run
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    run,
			Message: "Full sync completed",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleReconcileUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.logger.Errorf("failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	req := new(reconcileUserRequest)
	if err := json.Unmarshal(body, req); err != nil {
		a.logger.Errorf("failed to parse request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.UserID == 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusBadRequest,
				Message: "username and user_id are required",
			},
		)
		return
	}

	delta, err := a.service.ReconcileUser(r.Context(), req.Username, req.UserID)
	if err != nil {
		status := http.StatusInternalServerError

		rejected := new(ReconciliationRejectedError)
		if errors.As(err, &rejected) {
			status = http.StatusForbidden
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  status,
				Message: err.Error(),
			},
		)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    delta,
			Message: "User reconciled",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	run, err := a.service.LastRun(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: err.Error(),
			},
		)

		return
	}

	if run == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusNotFound,
				Message: "No sync run recorded yet",
			},
		)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    run,
			Message: "Last sync run",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	size, _ := strconv.ParseInt(r.URL.Query().Get("size"), 10, 64)

	organizations, err := a.service.ListOrganizations(r.Context(), page, size)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: err.Error(),
			},
		)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    organizations,
			Message: "List of organizations",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleListTeams(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	organizationID, err := strconv.ParseInt(chi.URLParam(r, "org_id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	teams, err := a.service.ListTeams(r.Context(), organizationID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: err.Error(),
			},
		)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    teams,
			Message: "List of teams",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleUserGroups(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	groups, err := a.service.UserGroups(r.Context(), userID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: err.Error(),
			},
		)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    groups,
			Message: "List of groups",
			Status:  http.StatusOK,
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
