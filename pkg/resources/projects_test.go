// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"strings"
	"testing"

	"github.com/canonical/aap-sync-service/internal/types"
)

func TestCreateProject(t *testing.T) {
	transport := newMockTransport()
	transport.postResponses["api/controller/v2/projects/"] = `{"id": 9, "name": "demo", "organization": 1, "status": "pending"}`
	transport.getResponses["api/controller/v2/projects/9/"] = []string{
		`{"id": 9, "status": "pending"}`,
		`{"id": 9, "status": "running"}`,
		`{"id": 9, "status": "successful"}`,
	}

	project := &types.Project{
		Name:         "demo",
		Organization: 1,
		SCMType:      "git",
		SCMURL:       "https://github.com/example/demo.git",
	}

	created, err := newTestService(transport).CreateProject(context.Background(), project, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.ID != 9 {
		t.Fatalf("expected id 9, got %d", created.ID)
	}
	if created.Status != "successful" {
		t.Fatalf("expected polling to settle on successful, got %q", created.Status)
	}
	if created.URL != "https://aap.example.com/execution/projects/9/details" {
		t.Fatalf("unexpected navigation URL %q", created.URL)
	}
	if len(transport.getCalls) != 3 {
		t.Fatalf("expected three polls, got %v", transport.getCalls)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	transport := newMockTransport()

	_, err := newTestService(transport).CreateProject(context.Background(), &types.Project{Name: "demo"}, false)
	if err == nil {
		t.Fatal("a project without an organization must be rejected")
	}
	if len(transport.postCalls) != 0 {
		t.Fatalf("invalid payloads must not reach the wire, got %v", transport.postCalls)
	}
}

func TestCreateProjectDeleteIfExistFirst(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/projects/?name=demo&organization=1"] = []string{
		`{"count": 1, "results": [{"id": 5, "name": "demo"}]}`,
	}
	transport.postResponses["api/controller/v2/projects/"] = `{"id": 9, "name": "demo", "organization": 1}`
	transport.getResponses["api/controller/v2/projects/9/"] = []string{
		`{"id": 9, "status": "successful"}`,
	}

	_, err := newTestService(transport).CreateProject(context.Background(), &types.Project{Name: "demo", Organization: 1}, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(transport.deleteCalls) != 1 || transport.deleteCalls[0] != "api/controller/v2/projects/5/" {
		t.Fatalf("expected the existing project to be deleted first, got %v", transport.deleteCalls)
	}
}

func TestCreateProjectFailureSurfacesUpdateMessage(t *testing.T) {
	transport := newMockTransport()
	transport.postResponses["api/controller/v2/projects/"] = `{"id": 9, "name": "demo", "organization": 1}`
	transport.getResponses["api/controller/v2/projects/9/"] = []string{
		`{"id": 9, "status": "failed", "summary_fields": {"last_job": {"id": 77}}}`,
	}
	transport.getResponses["api/controller/v2/project_updates/77/events/"] = []string{
		`{"results": [
			{"counter": 1, "event_data": {}},
			{"counter": 2, "event_data": {"res": {"msg": "repository not found"}}}
		]}`,
	}

	_, err := newTestService(transport).CreateProject(context.Background(), &types.Project{Name: "demo", Organization: 1}, false)
	if err == nil {
		t.Fatal("a failed source update must surface as an error")
	}

	if !strings.Contains(err.Error(), "repository not found") {
		t.Fatalf("expected the update's failure message, got %q", err.Error())
	}
}
