// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/aap-sync-service/internal/types"
)

type AggregatorInterface interface {
	BuildMembershipGraph(ctx context.Context) ([]*types.OrganizationMembership, error)
	CollectRoleAssignments(ctx context.Context) (types.RoleAssignments, error)
}

type ReconcilerInterface interface {
	Connect(sink Sink)
	ReconcileUser(ctx context.Context, username string, userID int64) (*types.UserEntityDelta, error)
}

type ServiceInterface interface {
	FullSync(ctx context.Context) (*types.SyncRun, error)
	ReconcileUser(ctx context.Context, username string, userID int64) (*types.UserEntityDelta, error)
	LastRun(ctx context.Context) (*types.SyncRun, error)

	// Catalog reads
	ListOrganizations(ctx context.Context, page, size int64) ([]*types.Organization, error)
	ListTeams(ctx context.Context, organizationID int64) ([]*types.Team, error)
	UserGroups(ctx context.Context, userID int64) ([]string, error)
}

// Sink is the mutation target of a delta reconciliation.
type Sink interface {
	UpsertUserEntity(ctx context.Context, delta *types.UserEntityDelta) error
}
