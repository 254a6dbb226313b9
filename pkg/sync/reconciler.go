// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/internal/types"
)

const usersPath = "api/gateway/v1/users/"

var _ ReconcilerInterface = (*Reconciler)(nil)

// userTeam carries the slice of the gateway team payload the inclusion
// policy needs: the team name and its organization's name.
type userTeam struct {
	Name string `json:"name"`

	SummaryFields struct {
		Organization struct {
			Name string `json:"name"`
		} `json:"organization"`
	} `json:"summary_fields"`
}

// Reconciler performs add-only, single-user delta updates against a
// connected mutation sink, without re-running the full sync.
type Reconciler struct {
	transport aap.TransportInterface
	paginator aap.PaginatorInterface
	sink      Sink

	organizations []string
	locationKey   string
	pageSize      int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Connect attaches the mutation sink. Reconciliation before Connect is a
// precondition error, not a silent no-op.
func (r *Reconciler) Connect(sink Sink) {
	r.sink = sink
}

// ReconcileUser builds and applies a single-entity delta for (username,
// userID). The user qualifies if they are a direct member of a configured
// organization, belong to a team inside one, or are a superuser.
//
// Group entries for matched organizations are their catalog namespaces
// (EntityNamespace, a slug of the name unless configured otherwise), not the
// raw display names, so they line up with the slugged team group names.
func (r *Reconciler) ReconcileUser(ctx context.Context, username string, userID int64) (*types.UserEntityDelta, error) {
	ctx, span := r.tracer.Start(ctx, "sync.Reconciler.ReconcileUser")
	defer span.End()

	if r.sink == nil {
		return nil, &NotInitializedError{Operation: "ReconcileUser"}
	}

	configured := make(map[string]bool, len(r.organizations))
	for _, name := range r.organizations {
		configured[strings.ToLower(name)] = true
	}

	matchingOrgs, err := r.matchingOrganizations(ctx, userID, configured)
	if err != nil {
		return nil, err
	}

	user, err := r.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Username) == "" {
		return nil, fmt.Errorf("user %d has an empty username", userID)
	}

	teamGroups, err := r.matchingTeamGroups(ctx, userID, configured)
	if err != nil {
		return nil, err
	}

	if len(matchingOrgs) == 0 && len(teamGroups) == 0 && !user.IsSuperuser {
		err := &ReconciliationRejectedError{Username: username, Organizations: r.organizations}
		r.logger.Errorf("reconciliation rejected: %v", err)
		return nil, err
	}

	user.IsOrgUser = len(matchingOrgs) > 0

	groups := make([]string, 0, len(teamGroups)+len(matchingOrgs))
	groups = append(groups, teamGroups...)
	for _, organization := range matchingOrgs {
		groups = append(groups, organization.EntityNamespace())
	}

	delta := &types.UserEntityDelta{
		User:        user,
		Groups:      groups,
		LocationKey: r.locationKey,
	}

	if err := r.sink.UpsertUserEntity(ctx, delta); err != nil {
		r.logger.Errorf("failed to apply delta for user %d: %v", userID, err)
		return nil, err
	}

	r.logger.Infof("reconciled user %s (%d) into %d group(s)", user.Username, userID, len(groups))

	return delta, nil
}

func (r *Reconciler) matchingOrganizations(ctx context.Context, userID int64, configured map[string]bool) ([]*types.Organization, error) {
	path := fmt.Sprintf("%s%d/organizations/?page_size=%d", usersPath, userID, r.pageSize)

	organizations, err := aap.CollectAs[types.Organization](ctx, r.paginator, path)
	if err != nil {
		return nil, err
	}

	matching := make([]*types.Organization, 0)
	for i := range organizations {
		if configured[strings.ToLower(organizations[i].Name)] {
			matching = append(matching, &organizations[i])
		}
	}

	return matching, nil
}

func (r *Reconciler) fetchUser(ctx context.Context, userID int64) (*types.User, error) {
	body, err := r.transport.Get(ctx, fmt.Sprintf("%s%d/", usersPath, userID))
	if err != nil {
		return nil, err
	}

	user := new(types.User)
	if err := json.Unmarshal(body, user); err != nil {
		return nil, fmt.Errorf("failed to parse user %d: %w", userID, err)
	}

	return user, nil
}

// matchingTeamGroups returns the group names of the user's teams that live
// inside a configured organization. Teams outside configured organizations
// are excluded even when the user belongs to them.
func (r *Reconciler) matchingTeamGroups(ctx context.Context, userID int64, configured map[string]bool) ([]string, error) {
	path := fmt.Sprintf("%s%d/teams/?page_size=%d", usersPath, userID, r.pageSize)

	teams, err := aap.CollectAs[userTeam](ctx, r.paginator, path)
	if err != nil {
		return nil, err
	}

	groups := make([]string, 0)
	for _, team := range teams {
		if configured[strings.ToLower(team.SummaryFields.Organization.Name)] {
			groups = append(groups, types.Slugify(team.Name))
		}
	}

	return groups, nil
}

func NewReconciler(
	transport aap.TransportInterface,
	paginator aap.PaginatorInterface,
	organizations []string,
	locationKey string,
	pageSize int,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Reconciler {
	r := new(Reconciler)

	r.transport = transport
	r.paginator = paginator

	r.organizations = organizations
	r.locationKey = locationKey
	r.pageSize = pageSize
	if r.pageSize == 0 {
		r.pageSize = 100
	}

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
