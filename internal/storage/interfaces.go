// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/aap-sync-service/internal/types"
)

type StorageInterface interface {
	// Full sync: rebuild and replace the whole catalog model.
	ReplaceCatalog(ctx context.Context, memberships []*types.OrganizationMembership, roles types.RoleAssignments, locationKey string) error

	// Delta sync: add-only upsert of a single user entity and its groups.
	UpsertUserEntity(ctx context.Context, delta *types.UserEntityDelta) error

	// Catalog reads
	ListOrganizations(ctx context.Context, page, size int64) ([]*types.Organization, error)
	ListTeams(ctx context.Context, organizationID int64) ([]*types.Team, error)
	GetUser(ctx context.Context, id int64) (*types.User, error)
	GetGroupsForUser(ctx context.Context, userID int64) ([]string, error)

	// Sync run bookkeeping
	BeginSyncRun(ctx context.Context, run *types.SyncRun) error
	FinishSyncRun(ctx context.Context, run *types.SyncRun) error
	LastSyncRun(ctx context.Context) (*types.SyncRun, error)
}
