// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/storage"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// Service orchestrates a full rebuild-and-replace reconciliation of the
// catalog and delegates single-user deltas to the reconciler.
type Service struct {
	aggregator AggregatorInterface
	reconciler ReconcilerInterface
	storage    storage.StorageInterface

	locationKey string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// FullSync rebuilds the catalog from the remote platform and replaces the
// stored model wholesale. The run record survives either way, carrying
// entity counts on success and the failure message otherwise.
func (s *Service) FullSync(ctx context.Context) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "sync.Service.FullSync")
	defer span.End()

	run := &types.SyncRun{
		ID:        uuid.NewString(),
		Status:    types.SyncRunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	if err := s.storage.BeginSyncRun(ctx, run); err != nil {
		s.logger.Errorf("failed to record sync run %s: %v", run.ID, err)
		return nil, err
	}

	s.logger.Infof("sync run %s started", run.ID)

	memberships, err := s.aggregator.BuildMembershipGraph(ctx)
	if err != nil {
		return s.finish(ctx, run, err)
	}

	roles, err := s.aggregator.CollectRoleAssignments(ctx)
	if err != nil {
		return s.finish(ctx, run, err)
	}

	if err := s.storage.ReplaceCatalog(ctx, memberships, roles, s.locationKey); err != nil {
		return s.finish(ctx, run, err)
	}

	for _, membership := range memberships {
		run.Organizations++
		run.Teams += len(membership.Teams)
		run.Users += len(membership.Users)
	}

	return s.finish(ctx, run, nil)
}

func (s *Service) finish(ctx context.Context, run *types.SyncRun, cause error) (*types.SyncRun, error) {
	now := time.Now().UTC()
	run.FinishedAt = &now

	if cause != nil {
		run.Status = types.SyncRunStatusFailed
		run.Error = cause.Error()
		s.logger.Errorf("sync run %s failed: %v", run.ID, cause)
	} else {
		run.Status = types.SyncRunStatusSucceeded
		s.logger.Infof(
			"sync run %s finished: %d organization(s), %d team(s), %d user(s)",
			run.ID, run.Organizations, run.Teams, run.Users,
		)
	}

	if err := s.storage.FinishSyncRun(ctx, run); err != nil {
		s.logger.Errorf("failed to finish sync run %s: %v", run.ID, err)
		if cause == nil {
			cause = err
		}
	}

	return run, cause
}

func (s *Service) ReconcileUser(ctx context.Context, username string, userID int64) (*types.UserEntityDelta, error) {
	ctx, span := s.tracer.Start(ctx, "sync.Service.ReconcileUser")
	defer span.End()

	return s.reconciler.ReconcileUser(ctx, username, userID)
}

func (s *Service) LastRun(ctx context.Context) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "sync.Service.LastRun")
	defer span.End()

	return s.storage.LastSyncRun(ctx)
}

func (s *Service) ListOrganizations(ctx context.Context, page, size int64) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "sync.Service.ListOrganizations")
	defer span.End()

	return s.storage.ListOrganizations(ctx, page, size)
}

func (s *Service) ListTeams(ctx context.Context, organizationID int64) ([]*types.Team, error) {
	ctx, span := s.tracer.Start(ctx, "sync.Service.ListTeams")
	defer span.End()

	return s.storage.ListTeams(ctx, organizationID)
}

func (s *Service) UserGroups(ctx context.Context, userID int64) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "sync.Service.UserGroups")
	defer span.End()

	return s.storage.GetGroupsForUser(ctx, userID)
}

// LocationKey derives the stable provider key for a platform base URL,
// "aap:<host>". Same platform, same key, across restarts.
func LocationKey(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return "aap:" + baseURL
	}

	return "aap:" + parsed.Host
}

func NewService(
	aggregator AggregatorInterface,
	reconciler ReconcilerInterface,
	store storage.StorageInterface,
	locationKey string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.aggregator = aggregator
	s.reconciler = reconciler
	s.storage = store
	s.locationKey = locationKey

	s.reconciler.Connect(store)

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
