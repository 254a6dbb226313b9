// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
)

func newTestReconciler(transport *mockTransport, organizations []string) *Reconciler {
	logger := logging.NewNoopLogger()
	tracer := new(mockTracer)
	paginator := aap.NewPaginator(transport, 0, tracer, logger)

	return NewReconciler(
		transport,
		paginator,
		organizations,
		"aap:aap.example.com",
		100,
		tracer,
		new(mockMonitor),
		logger,
	)
}

func TestReconcileUserBeforeConnect(t *testing.T) {
	reconciler := newTestReconciler(newMockTransport(), []string{"Engineering"})

	_, err := reconciler.ReconcileUser(context.Background(), "alice", 100)

	notInitialized := new(NotInitializedError)
	if !errors.As(err, &notInitialized) {
		t.Fatalf("expected NotInitializedError, got %v", err)
	}
}

func TestReconcileUser(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/users/100/organizations/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 1, "name": "engineering"}, {"id": 2, "name": "Sales"}]
	}`
	transport.getResponses["api/gateway/v1/users/100/"] = `{"id": 100, "username": "alice", "email": "alice@example.com"}`
	transport.getResponses["api/gateway/v1/users/100/teams/?page_size=100"] = `{
		"next": null,
		"results": [
			{"name": "Core Team", "summary_fields": {"organization": {"name": "Engineering"}}},
			{"name": "Road Warriors", "summary_fields": {"organization": {"name": "Sales"}}}
		]
	}`

	reconciler := newTestReconciler(transport, []string{"Engineering"})
	sink := new(mockSink)
	reconciler.Connect(sink)

	delta, err := reconciler.ReconcileUser(context.Background(), "alice", 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// the Sales team is excluded, its organization is not configured
	if !reflect.DeepEqual(delta.Groups, []string{"core-team", "engineering"}) {
		t.Fatalf("unexpected groups %v", delta.Groups)
	}
	if !delta.User.IsOrgUser {
		t.Fatal("direct organization membership must set is_orguser")
	}
	if delta.LocationKey != "aap:aap.example.com" {
		t.Fatalf("unexpected location key %q", delta.LocationKey)
	}

	if len(sink.deltas) != 1 {
		t.Fatalf("expected one applied delta, got %d", len(sink.deltas))
	}
}

func TestReconcileUserRejected(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/users/200/organizations/?page_size=100"] = `{
		"next": null,
		"results": [{"id": 2, "name": "Sales"}]
	}`
	transport.getResponses["api/gateway/v1/users/200/"] = `{"id": 200, "username": "mallory"}`
	transport.getResponses["api/gateway/v1/users/200/teams/?page_size=100"] = `{
		"next": null,
		"results": []
	}`

	reconciler := newTestReconciler(transport, []string{"Engineering", "Platform"})
	sink := new(mockSink)
	reconciler.Connect(sink)

	_, err := reconciler.ReconcileUser(context.Background(), "mallory", 200)

	rejected := new(ReconciliationRejectedError)
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ReconciliationRejectedError, got %v", err)
	}
	if rejected.Error() == "" || len(sink.deltas) != 0 {
		t.Fatal("rejection must be explicit and apply nothing")
	}

	for _, name := range []string{"Engineering", "Platform"} {
		if !strings.Contains(rejected.Error(), name) {
			t.Fatalf("expected error to name %q, got %q", name, rejected.Error())
		}
	}
}

func TestReconcileSuperuserOutsideConfiguredOrgs(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/gateway/v1/users/300/organizations/?page_size=100"] = `{
		"next": null,
		"results": []
	}`
	transport.getResponses["api/gateway/v1/users/300/"] = `{"id": 300, "username": "root", "is_superuser": true}`
	transport.getResponses["api/gateway/v1/users/300/teams/?page_size=100"] = `{
		"next": null,
		"results": []
	}`

	reconciler := newTestReconciler(transport, []string{"Engineering"})
	reconciler.Connect(new(mockSink))

	delta, err := reconciler.ReconcileUser(context.Background(), "root", 300)
	if err != nil {
		t.Fatalf("superusers always qualify, got %v", err)
	}

	if len(delta.Groups) != 0 {
		t.Fatalf("expected no groups, got %v", delta.Groups)
	}
	if delta.User.IsOrgUser {
		t.Fatal("no direct membership, is_orguser must be false")
	}
}
