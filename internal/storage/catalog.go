// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/aap-sync-service/internal/db"
	"github.com/canonical/aap-sync-service/internal/types"
)

// withTx runs fn inside the request transaction when one is present in ctx,
// otherwise it opens and settles its own.
func (s *Storage) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	if err := fn(db.ContextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}
		return err
	}

	return tx.Commit()
}

// ReplaceCatalog rebuilds the whole catalog model from scratch. Full syncs
// never merge incrementally, partial state from a previous run is dropped
// wholesale.
func (s *Storage) ReplaceCatalog(ctx context.Context, memberships []*types.OrganizationMembership, roles types.RoleAssignments, locationKey string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ReplaceCatalog")
	defer span.End()

	return s.withTx(ctx, func(ctx context.Context) error {
		for _, table := range []string{"role_assignments", "user_groups", "organization_users", "teams", "users", "organizations"} {
			if _, err := s.db.Statement(ctx).Delete(table).Exec(); err != nil {
				return fmt.Errorf("failed to clear %s: %v", table, err)
			}
		}

		now := time.Now().UTC()
		seenUsers := make(map[int64]bool)

		for _, m := range memberships {
			if err := s.insertOrganization(ctx, m.Organization, locationKey, now); err != nil {
				return err
			}

			for _, team := range m.Teams {
				if err := s.insertTeam(ctx, team, locationKey, now); err != nil {
					return err
				}
			}

			for _, user := range m.Users {
				if !seenUsers[user.ID] {
					if err := s.insertUser(ctx, user, locationKey, now); err != nil {
						return err
					}
					seenUsers[user.ID] = true
				}

				if _, err := s.db.Statement(ctx).
					Insert("organization_users").
					Columns("organization_id", "user_id").
					Values(m.Organization.ID, user.ID).
					Suffix("ON CONFLICT DO NOTHING").
					Exec(); err != nil {
					return fmt.Errorf("failed to link user %d to organization %d: %v", user.ID, m.Organization.ID, err)
				}
			}
		}

		for userID, byRole := range roles {
			if !seenUsers[userID] {
				continue
			}
			for roleName, objectIDs := range byRole {
				if len(objectIDs) == 0 {
					if _, err := s.db.Statement(ctx).
						Insert("role_assignments").
						Columns("user_id", "role_name", "object_id").
						Values(userID, roleName, nil).
						Exec(); err != nil {
						return fmt.Errorf("failed to insert role assignment: %v", err)
					}
					continue
				}
				for _, objectID := range objectIDs {
					if _, err := s.db.Statement(ctx).
						Insert("role_assignments").
						Columns("user_id", "role_name", "object_id").
						Values(userID, roleName, objectID).
						Exec(); err != nil {
						return fmt.Errorf("failed to insert role assignment: %v", err)
					}
				}
			}
		}

		return nil
	})
}

func (s *Storage) insertOrganization(ctx context.Context, org *types.Organization, locationKey string, now time.Time) error {
	_, err := s.db.Statement(ctx).
		Insert("organizations").
		Columns("id", "name", "namespace", "location_key", "created_at", "updated_at").
		Values(org.ID, org.Name, org.EntityNamespace(), locationKey, now, now).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert organization %q: %v", org.Name, err)
	}

	return nil
}

func (s *Storage) insertTeam(ctx context.Context, team *types.Team, locationKey string, now time.Time) error {
	_, err := s.db.Statement(ctx).
		Insert("teams").
		Columns("id", "organization_id", "name", "group_name", "description", "location_key", "created_at", "updated_at").
		Values(team.ID, team.Organization, team.Name, team.GroupName(), team.Description, locationKey, now, now).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert team %q: %v", team.Name, err)
	}

	return nil
}

func (s *Storage) insertUser(ctx context.Context, user *types.User, locationKey string, now time.Time) error {
	_, err := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "username", "email", "first_name", "last_name", "url", "is_superuser", "is_orguser", "location_key", "created_at", "updated_at").
		Values(user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.URL, user.IsSuperuser, user.IsOrgUser, locationKey, now, now).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert user %q: %v", user.Username, err)
	}

	return nil
}

// UpsertUserEntity applies a single-user delta without touching the rest of
// the catalog. Add-only: group links are created, never removed.
func (s *Storage) UpsertUserEntity(ctx context.Context, delta *types.UserEntityDelta) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpsertUserEntity")
	defer span.End()

	return s.withTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		user := delta.User

		if _, err := s.db.Statement(ctx).
			Insert("users").
			Columns("id", "username", "email", "first_name", "last_name", "url", "is_superuser", "is_orguser", "location_key", "created_at", "updated_at").
			Values(user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.URL, user.IsSuperuser, user.IsOrgUser, delta.LocationKey, now, now).
			Suffix("ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, email = EXCLUDED.email, first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, url = EXCLUDED.url, is_superuser = EXCLUDED.is_superuser, is_orguser = EXCLUDED.is_orguser, location_key = EXCLUDED.location_key, updated_at = EXCLUDED.updated_at").
			Exec(); err != nil {
			return fmt.Errorf("failed to upsert user %q: %v", user.Username, err)
		}

		for _, group := range delta.Groups {
			if _, err := s.db.Statement(ctx).
				Insert("user_groups").
				Columns("user_id", "group_name").
				Values(user.ID, group).
				Suffix("ON CONFLICT DO NOTHING").
				Exec(); err != nil {
				return fmt.Errorf("failed to link user %q to group %q: %v", user.Username, group, err)
			}
		}

		return nil
	})
}

func (s *Storage) ListOrganizations(ctx context.Context, page, size int64) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListOrganizations")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select("id", "name", "namespace").
		From("organizations").
		OrderBy("name ASC").
		Offset(db.Offset(page, pageSize)).
		Limit(pageSize).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %v", err)
	}
	defer rows.Close()

	orgs := make([]*types.Organization, 0)
	for rows.Next() {
		org := new(types.Organization)
		if err := rows.Scan(&org.ID, &org.Name, &org.Namespace); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %v", err)
		}
		orgs = append(orgs, org)
	}

	return orgs, rows.Err()
}

func (s *Storage) ListTeams(ctx context.Context, organizationID int64) ([]*types.Team, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListTeams")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "organization_id", "name", "description").
		From("teams").
		Where("organization_id = ?", organizationID).
		OrderBy("name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %v", err)
	}
	defer rows.Close()

	teams := make([]*types.Team, 0)
	for rows.Next() {
		team := new(types.Team)
		if err := rows.Scan(&team.ID, &team.Organization, &team.Name, &team.Description); err != nil {
			return nil, fmt.Errorf("failed to scan team: %v", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetUser")
	defer span.End()

	user := new(types.User)
	err := s.db.Statement(ctx).
		Select("id", "username", "email", "first_name", "last_name", "url", "is_superuser", "is_orguser").
		From("users").
		Where("id = ?", id).
		QueryRowContext(ctx).
		Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.URL, &user.IsSuperuser, &user.IsOrgUser)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %v", id, err)
	}

	return user, nil
}

func (s *Storage) GetGroupsForUser(ctx context.Context, userID int64) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetGroupsForUser")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("group_name").
		From("user_groups").
		Where("user_id = ?", userID).
		OrderBy("group_name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query user groups: %v", err)
	}
	defer rows.Close()

	groups := make([]string, 0)
	for rows.Next() {
		var group string
		if err := rows.Scan(&group); err != nil {
			return nil, fmt.Errorf("failed to scan group: %v", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func (s *Storage) BeginSyncRun(ctx context.Context, run *types.SyncRun) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.BeginSyncRun")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("sync_runs").
		Columns("id", "status", "started_at").
		Values(run.ID, run.Status, run.StartedAt).
		Exec()
	if err != nil {
		if IsDuplicateKeyError(err) {
			return WrapDuplicateKeyError(err, "sync run already recorded")
		}
		return fmt.Errorf("failed to record sync run: %v", err)
	}

	return nil
}

func (s *Storage) FinishSyncRun(ctx context.Context, run *types.SyncRun) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.FinishSyncRun")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("sync_runs").
		Set("status", run.Status).
		Set("organizations", run.Organizations).
		Set("teams", run.Teams).
		Set("users", run.Users).
		Set("error", run.Error).
		Set("finished_at", run.FinishedAt).
		Where("id = ?", run.ID).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to finish sync run %s: %v", run.ID, err)
	}

	return nil
}

func (s *Storage) LastSyncRun(ctx context.Context) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.LastSyncRun")
	defer span.End()

	run := new(types.SyncRun)
	var finishedAt sql.NullTime

	err := s.db.Statement(ctx).
		Select("id", "status", "organizations", "teams", "users", "error", "started_at", "finished_at").
		From("sync_runs").
		OrderBy("started_at DESC").
		Limit(1).
		QueryRowContext(ctx).
		Scan(&run.ID, &run.Status, &run.Organizations, &run.Teams, &run.Users, &run.Error, &run.StartedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last sync run: %v", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}

	return run, nil
}
