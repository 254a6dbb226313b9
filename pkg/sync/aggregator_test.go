// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
)

func newTestAggregator(transport *mockTransport, config *AggregatorConfig) *Aggregator {
	logger := logging.NewNoopLogger()
	tracer := new(mockTracer)
	paginator := aap.NewPaginator(transport, 0, tracer, logger)

	return NewAggregator(paginator, config, tracer, new(mockMonitor), logger)
}

func TestBuildMembershipGraphShallow(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/organizations/?name__iexact=Engineering&page_size=100"] = `{
		"next": null,
		"results": [{"id": 1, "name": "Engineering", "related": {"teams": "/api/gateway/v1/organizations/1/teams/", "users": "/api/gateway/v1/organizations/1/users/"}}]
	}`

	aggregator := newTestAggregator(transport, &AggregatorConfig{
		Organizations:      []string{"Engineering"},
		UserAndTeamDetails: false,
	})

	memberships, err := aggregator.BuildMembershipGraph(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(memberships) != 1 {
		t.Fatalf("expected one organization, got %d", len(memberships))
	}
	if len(memberships[0].Teams) != 0 || len(memberships[0].Users) != 0 {
		t.Fatal("shallow mode must not fetch teams or users")
	}
	if len(transport.getCalls) != 1 {
		t.Fatalf("shallow mode must issue exactly one request, got %v", transport.getCalls)
	}
}

func TestBuildMembershipGraphOrganizationFilter(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/organizations/?or__name__iexact=Engineering&or__name__iexact=Platform&page_size=100"] = `{
		"next": null,
		"results": []
	}`

	aggregator := newTestAggregator(transport, &AggregatorConfig{
		Organizations: []string{"Engineering", "Platform"},
	})

	if _, err := aggregator.BuildMembershipGraph(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestBuildMembershipGraphDeduplicatesUsers(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/organizations/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 1, "name": "Engineering", "related": {"teams": "/api/gateway/v1/organizations/1/teams/", "users": "/api/gateway/v1/organizations/1/users/"}}]
	}`
	transport.getResponses["/api/gateway/v1/organizations/1/teams/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 7, "organization": 1, "name": "Core Team", "related": {"users": "/api/gateway/v1/teams/7/users/"}}]
	}`
	transport.getResponses["/api/gateway/v1/organizations/1/users/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 100, "username": "alice"}]
	}`
	transport.getResponses["/api/gateway/v1/teams/7/users/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 100, "username": "alice"}, {"id": 200, "username": "bob"}]
	}`

	aggregator := newTestAggregator(transport, &AggregatorConfig{
		UserAndTeamDetails: true,
	})

	memberships, err := aggregator.BuildMembershipGraph(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	users := memberships[0].Users
	if len(users) != 2 {
		t.Fatalf("expected two de-duplicated users, got %d", len(users))
	}

	byName := map[string]bool{}
	for _, user := range users {
		byName[user.Username] = user.IsOrgUser
	}

	if !byName["alice"] {
		t.Fatal("alice is a direct member, is_orguser must stay true")
	}
	if byName["bob"] {
		t.Fatal("bob was discovered via team membership only, is_orguser must be false")
	}

	if memberships[0].Teams[0].GroupName() != "core-team" {
		t.Fatalf("unexpected group name %q", memberships[0].Teams[0].GroupName())
	}
}

func TestBuildMembershipGraphFailsAtomically(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/organizations/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 1, "name": "Engineering", "related": {"teams": "/api/gateway/v1/organizations/1/teams/", "users": "/api/gateway/v1/organizations/1/users/"}}]
	}`
	transport.getResponses["/api/gateway/v1/organizations/1/users/?page_size=100"] = `{
		"next": null,
		"results": []
	}`
	// the teams endpoint is left unscripted and fails

	aggregator := newTestAggregator(transport, &AggregatorConfig{
		UserAndTeamDetails: true,
	})

	memberships, err := aggregator.BuildMembershipGraph(context.Background())

	aggregation := new(AggregationError)
	if !errors.As(err, &aggregation) {
		t.Fatalf("expected AggregationError, got %v", err)
	}
	if aggregation.Endpoint != "api/gateway/v1/organizations/" {
		t.Fatalf("expected the root endpoint to be named, got %q", aggregation.Endpoint)
	}
	if memberships != nil {
		t.Fatal("partial results must be discarded")
	}
}
