// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/types"
)

func newTestService(transport *mockTransport) *Service {
	logger := logging.NewNoopLogger()
	tracer := new(mockTracer)
	paginator := aap.NewPaginator(transport, 0, tracer, logger)

	return NewService(
		transport,
		paginator,
		&Config{PollInterval: time.Millisecond},
		tracer,
		new(mockMonitor),
		logger,
	)
}

func TestResolveTemplateID(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=Deploy+All"] = []string{
		`{"count": 2, "results": [{"id": 456, "name": "Deploy All"}, {"id": 789, "name": "Deploy All"}]}`,
	}

	id, err := newTestService(transport).ResolveTemplateID(context.Background(), "Deploy All")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if id != 456 {
		t.Fatalf("expected first match 456, got %d", id)
	}
}

func TestResolveTemplateIDNotFound(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=missing"] = []string{
		`{"count": 0, "results": []}`,
	}

	_, err := newTestService(transport).ResolveTemplateID(context.Background(), "missing")

	notFound := new(TemplateNotFoundError)
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TemplateNotFoundError, got %v", err)
	}

	if notFound.Error() != "No job template found with name: missing" {
		t.Fatalf("unexpected error message %q", notFound.Error())
	}
}

func TestLaunchJobSuccessful(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=T"] = []string{
		`{"count": 1, "results": [{"id": 456, "name": "T"}]}`,
	}
	transport.postResponses["api/controller/v2/job_templates/456/launch/"] = `{"id": 123, "status": "pending"}`
	transport.getResponses["api/controller/v2/jobs/123/"] = []string{
		`{"id": 123, "status": "running"}`,
		`{"id": 123, "status": "successful"}`,
	}
	transport.getResponses["api/controller/v2/jobs/123/job_events/?page_size=100"] = []string{
		`{"next": null, "results": [{"counter": 1, "event": "runner_on_ok", "stdout": "ok: [host-1]"}]}`,
	}

	execution, err := newTestService(transport).LaunchJob(context.Background(), "T", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if execution.ID != 123 {
		t.Fatalf("expected job id 123, got %d", execution.ID)
	}
	if !execution.Status.Successful() {
		t.Fatalf("expected successful status, got %q", execution.Status)
	}
	if len(execution.Events) != 1 || execution.Events[0].Stdout != "ok: [host-1]" {
		t.Fatalf("unexpected events %+v", execution.Events)
	}
	if execution.URL != "https://aap.example.com/execution/jobs/playbook/123/output" {
		t.Fatalf("unexpected output URL %q", execution.URL)
	}
}

func TestLaunchJobUppercaseTerminalStatus(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=T"] = []string{
		`{"count": 1, "results": [{"id": 456, "name": "T"}]}`,
	}
	transport.postResponses["api/controller/v2/job_templates/456/launch/"] = `{"id": 123}`
	transport.getResponses["api/controller/v2/jobs/123/"] = []string{
		`{"id": 123, "status": "SUCCESSFUL"}`,
	}
	transport.getResponses["api/controller/v2/jobs/123/job_events/?page_size=100"] = []string{
		`{"next": null, "results": []}`,
	}

	execution, err := newTestService(transport).LaunchJob(context.Background(), "T", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !execution.Status.Successful() {
		t.Fatalf("expected case-insensitive success, got %q", execution.Status)
	}
}

func TestLaunchJobFailedDiagnosesStdout(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=T"] = []string{
		`{"count": 1, "results": [{"id": 456, "name": "T"}]}`,
	}
	transport.postResponses["api/controller/v2/job_templates/456/launch/"] = `{"id": 123}`
	transport.getResponses["api/controller/v2/jobs/123/"] = []string{
		`{"id": 123, "status": "failed"}`,
	}
	transport.getResponses["api/controller/v2/jobs/123/job_events/?page_size=100"] = []string{
		`{"next": null, "results": []}`,
	}
	transport.getResponses["api/controller/v2/jobs/123/stdout/?format=txt"] = []string{
		`TASK [deploy] ***
fatal: [host-1]: FAILED! => {"changed": false, "msg": "first failure"}
fatal: [host-2]: FAILED! => {"changed": false, "msg": "unreachable host"}`,
	}

	_, err := newTestService(transport).LaunchJob(context.Background(), "T", nil)

	executionError := new(JobExecutionError)
	if !errors.As(err, &executionError) {
		t.Fatalf("expected JobExecutionError, got %v", err)
	}

	if executionError.Error() != "Job execution failed due to unreachable host" {
		t.Fatalf("expected last msg to win, got %q", executionError.Error())
	}
}

func TestLaunchJobFailedWithoutDiagnosableOutput(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=T"] = []string{
		`{"count": 1, "results": [{"id": 456, "name": "T"}]}`,
	}
	transport.postResponses["api/controller/v2/job_templates/456/launch/"] = `{"id": 123}`
	transport.getResponses["api/controller/v2/jobs/123/"] = []string{
		`{"id": 123, "status": "error"}`,
	}
	transport.getResponses["api/controller/v2/jobs/123/job_events/?page_size=100"] = []string{
		`{"next": null, "results": []}`,
	}

	_, err := newTestService(transport).LaunchJob(context.Background(), "T", nil)

	executionError := new(JobExecutionError)
	if !errors.As(err, &executionError) {
		t.Fatalf("expected JobExecutionError, got %v", err)
	}

	if executionError.Message != UndefinedErrorMessage {
		t.Fatalf("expected fixed fallback message, got %q", executionError.Message)
	}
}

func TestLaunchJobDuplicateCredentialTypesRejectedBeforeLaunch(t *testing.T) {
	transport := newMockTransport()
	transport.getResponses["api/controller/v2/job_templates/?name=T"] = []string{
		`{"count": 1, "results": [{"id": 456, "name": "T"}]}`,
	}

	params := &LaunchParams{
		Credentials: []types.Credential{
			{ID: 1, CredentialType: "vault"},
			{ID: 2, CredentialType: "vault"},
			{ID: 3, CredentialType: "machine"},
			{ID: 4, CredentialType: "machine"},
		},
	}

	_, err := newTestService(transport).LaunchJob(context.Background(), "T", params)

	duplicate := new(DuplicateCredentialTypeError)
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected DuplicateCredentialTypeError, got %v", err)
	}

	if duplicate.Error() != "duplicate credential types in launch request: machine, vault" {
		t.Fatalf("expected sorted type names, got %q", duplicate.Error())
	}

	if len(transport.postCalls) != 0 {
		t.Fatalf("expected no launch request, got %v", transport.postCalls)
	}

	if len(transport.getCalls) != 0 {
		t.Fatalf("expected no network calls before rejection, got %v", transport.getCalls)
	}
}
