// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/internal/types"
)

const (
	organizationsPath   = "api/gateway/v1/organizations/"
	roleAssignmentsPath = "api/gateway/v1/role_user_assignments/"

	relatedTeams = "teams"
	relatedUsers = "users"
)

var _ AggregatorInterface = (*Aggregator)(nil)

type AggregatorConfig struct {
	// Organizations filters the build to the named organizations,
	// case-insensitive. Empty means all.
	Organizations []string
	// UserAndTeamDetails false produces a shallow graph: organizations with
	// empty team and user lists.
	UserAndTeamDetails bool

	PageSize            int
	TeamMemberBatchSize int
}

// Aggregator builds the membership graph out of the gateway collections.
// Every full build starts from scratch, there is no incremental merge.
type Aggregator struct {
	paginator aap.PaginatorInterface

	organizations       []string
	userAndTeamDetails  bool
	pageSize            int
	teamMemberBatchSize int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// BuildMembershipGraph fetches the configured organizations and, unless
// running shallow, their teams, direct users and team members. Any failure
// anywhere voids the whole build.
func (a *Aggregator) BuildMembershipGraph(ctx context.Context) ([]*types.OrganizationMembership, error) {
	ctx, span := a.tracer.Start(ctx, "sync.Aggregator.BuildMembershipGraph")
	defer span.End()

	memberships, err := a.buildMembershipGraph(ctx)
	if err != nil {
		a.logger.Errorf("membership graph build failed: %v", err)
		return nil, &AggregationError{Endpoint: organizationsPath, Err: err}
	}

	return memberships, nil
}

func (a *Aggregator) buildMembershipGraph(ctx context.Context) ([]*types.OrganizationMembership, error) {
	organizations, err := aap.CollectAs[types.Organization](ctx, a.paginator, a.organizationsQuery())
	if err != nil {
		return nil, err
	}

	memberships := make([]*types.OrganizationMembership, len(organizations))
	for i := range organizations {
		memberships[i] = &types.OrganizationMembership{
			Organization: &organizations[i],
			Teams:        make([]*types.Team, 0),
			Users:        make([]*types.User, 0),
		}
	}

	if !a.userAndTeamDetails {
		return memberships, nil
	}

	// each organization fills its own slot, merging happens by index
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range memberships {
		membership := memberships[i]
		group.Go(func() error {
			return a.populateOrganization(groupCtx, membership)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return memberships, nil
}

// organizationsQuery applies the name filter: one configured name matches
// case-insensitively, several are OR-combined, none means no filter.
func (a *Aggregator) organizationsQuery() string {
	query := url.Values{}
	query.Set("page_size", fmt.Sprintf("%d", a.pageSize))

	switch len(a.organizations) {
	case 0:
	case 1:
		query.Set("name__iexact", a.organizations[0])
	default:
		for _, name := range a.organizations {
			query.Add("or__name__iexact", name)
		}
	}

	return organizationsPath + "?" + query.Encode()
}

func (a *Aggregator) populateOrganization(ctx context.Context, membership *types.OrganizationMembership) error {
	organization := membership.Organization

	// teams and direct users are independent, fetch them concurrently
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		link, ok := organization.Related[relatedTeams]
		if !ok {
			return nil
		}

		teams, err := aap.CollectAs[types.Team](groupCtx, a.paginator, a.withPageSize(link))
		if err != nil {
			return err
		}

		for i := range teams {
			membership.Teams = append(membership.Teams, &teams[i])
		}

		return nil
	})

	group.Go(func() error {
		link, ok := organization.Related[relatedUsers]
		if !ok {
			return nil
		}

		users, err := aap.CollectAs[types.User](groupCtx, a.paginator, a.withPageSize(link))
		if err != nil {
			return err
		}

		for i := range users {
			users[i].IsOrgUser = true
			membership.Users = append(membership.Users, &users[i])
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	if err := a.appendTeamMembers(ctx, membership); err != nil {
		return err
	}

	membership.Users = dedupeByID(membership.Users)

	return nil
}

// appendTeamMembers fetches team member lists in batches. Batches run
// sequentially while members within one batch are fetched concurrently,
// bounding simultaneous calls against the remote platform.
func (a *Aggregator) appendTeamMembers(ctx context.Context, membership *types.OrganizationMembership) error {
	teams := membership.Teams

	for start := 0; start < len(teams); start += a.teamMemberBatchSize {
		end := start + a.teamMemberBatchSize
		if end > len(teams) {
			end = len(teams)
		}

		batch := teams[start:end]
		collected := make([][]types.User, len(batch))

		group, groupCtx := errgroup.WithContext(ctx)
		for i := range batch {
			i := i
			team := batch[i]
			group.Go(func() error {
				link, ok := team.Related[relatedUsers]
				if !ok {
					return nil
				}

				members, err := aap.CollectAs[types.User](groupCtx, a.paginator, a.withPageSize(link))
				if err != nil {
					return err
				}

				collected[i] = members
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return err
		}

		for _, members := range collected {
			for i := range members {
				// team-only users are not direct organization members
				members[i].IsOrgUser = false
				membership.Users = append(membership.Users, &members[i])
			}
		}
	}

	return nil
}

// CollectRoleAssignments fetches the flat role assignment collection and
// folds it by user and role definition name.
func (a *Aggregator) CollectRoleAssignments(ctx context.Context) (types.RoleAssignments, error) {
	ctx, span := a.tracer.Start(ctx, "sync.Aggregator.CollectRoleAssignments")
	defer span.End()

	path := fmt.Sprintf("%s?page_size=%d", roleAssignmentsPath, a.pageSize)

	entries, err := aap.CollectAs[types.RoleUserAssignment](ctx, a.paginator, path)
	if err != nil {
		a.logger.Errorf("role assignment collection failed: %v", err)
		return nil, &AggregationError{Endpoint: roleAssignmentsPath, Err: err}
	}

	return FoldRoleAssignments(entries), nil
}

func (a *Aggregator) withPageSize(link string) string {
	separator := "?"
	if strings.Contains(link, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%spage_size=%d", link, separator, a.pageSize)
}

// dedupeByID keeps the first occurrence of every user id. Direct members
// are appended before team members, so direct membership wins for shared
// ids.
func dedupeByID(users []*types.User) []*types.User {
	seen := make(map[int64]bool, len(users))
	deduped := make([]*types.User, 0, len(users))

	for _, user := range users {
		if seen[user.ID] {
			continue
		}

		seen[user.ID] = true
		deduped = append(deduped, user)
	}

	return deduped
}

func NewAggregator(
	paginator aap.PaginatorInterface,
	config *AggregatorConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Aggregator {
	a := new(Aggregator)

	a.paginator = paginator

	a.organizations = config.Organizations
	a.userAndTeamDetails = config.UserAndTeamDetails
	a.pageSize = config.PageSize
	if a.pageSize == 0 {
		a.pageSize = 100
	}
	a.teamMemberBatchSize = config.TeamMemberBatchSize
	if a.teamMemberBatchSize == 0 {
		a.teamMemberBatchSize = 100
	}

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
