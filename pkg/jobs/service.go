// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/internal/types"
)

const (
	jobTemplatesPath = "api/controller/v2/job_templates/"
	jobsPath         = "api/controller/v2/jobs/"
)

// msgPattern matches structured failure messages inside raw job output;
// the last occurrence wins.
var msgPattern = regexp.MustCompile(`"msg": "([^"]*)"`)

var _ ServiceInterface = (*Service)(nil)

type Config struct {
	PollInterval    time.Duration
	MaxPollDuration time.Duration
	PageSize        int
}

// Service drives a job from template name to terminal status: resolve,
// launch, poll, collect events, diagnose on failure.
type Service struct {
	transport aap.TransportInterface
	paginator aap.PaginatorInterface

	pollInterval    time.Duration
	maxPollDuration time.Duration
	pageSize        int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ResolveTemplateID looks a template up by exact name. When the platform
// returns several matches the first in page order wins, remote ordering is
// accepted as the tie-break.
func (s *Service) ResolveTemplateID(ctx context.Context, name string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.Service.ResolveTemplateID")
	defer span.End()

	query := url.Values{}
	query.Set("name", name)

	body, err := s.transport.Get(ctx, jobTemplatesPath+"?"+query.Encode())
	if err != nil {
		return 0, err
	}

	var page struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return 0, fmt.Errorf("failed to parse template listing: %w", err)
	}

	if len(page.Results) == 0 {
		return 0, &TemplateNotFoundError{Name: name}
	}

	return page.Results[0].ID, nil
}

// LaunchJob runs the whole state machine. The returned execution carries
// the collected events and a navigable output URL regardless of outcome;
// a non-successful terminal status surfaces as a JobExecutionError.
func (s *Service) LaunchJob(ctx context.Context, templateName string, params *LaunchParams) (*types.JobExecution, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.Service.LaunchJob")
	defer span.End()

	if params == nil {
		params = new(LaunchParams)
	}
	// validation is pure, reject before the first remote call
	if err := params.Validate(); err != nil {
		return nil, err
	}

	templateID, err := s.ResolveTemplateID(ctx, templateName)
	if err != nil {
		return nil, err
	}

	body, err := s.transport.Post(ctx, fmt.Sprintf("%s%d/launch/", jobTemplatesPath, templateID), params.Payload())
	if err != nil {
		return nil, err
	}

	var launched struct {
		ID  int64 `json:"id"`
		Job int64 `json:"job"`
	}
	if err := json.Unmarshal(body, &launched); err != nil {
		return nil, fmt.Errorf("failed to parse launch response: %w", err)
	}

	jobID := launched.ID
	if jobID == 0 {
		jobID = launched.Job
	}

	status, err := s.pollUntilTerminal(ctx, jobID)
	if err != nil {
		return nil, err
	}

	// events are collected regardless of outcome
	events, err := aap.CollectAs[types.JobEvent](ctx, s.paginator, fmt.Sprintf("%s%d/job_events/?page_size=%d", jobsPath, jobID, s.pageSize))
	if err != nil {
		return nil, err
	}

	s.traceEvents(jobID, events)

	execution := &types.JobExecution{
		ID:     jobID,
		Status: status,
		Events: events,
		URL:    fmt.Sprintf("%s/execution/jobs/playbook/%d/output", s.transport.BaseURL(), jobID),
	}

	if status.Successful() {
		return execution, nil
	}

	return nil, s.diagnoseFailure(ctx, execution)
}

func (s *Service) pollUntilTerminal(ctx context.Context, jobID int64) (types.JobStatus, error) {
	deadline := time.Time{}
	if s.maxPollDuration > 0 {
		deadline = time.Now().Add(s.maxPollDuration)
	}

	for {
		body, err := s.transport.Get(ctx, fmt.Sprintf("%s%d/", jobsPath, jobID))
		if err != nil {
			return "", err
		}

		var detail struct {
			Status types.JobStatus `json:"status"`
		}
		if err := json.Unmarshal(body, &detail); err != nil {
			return "", fmt.Errorf("failed to parse job detail: %w", err)
		}

		if detail.Status.Terminal() {
			return detail.Status, nil
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return "", fmt.Errorf("job %d did not reach a terminal status within %s", jobID, s.maxPollDuration)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
}

// diagnoseFailure scans the job's raw text output for the last structured
// msg. When the stdout fetch itself fails the fixed fallback message is
// used instead, the original failure signal is never lost.
func (s *Service) diagnoseFailure(ctx context.Context, execution *types.JobExecution) error {
	message := UndefinedErrorMessage

	body, err := s.transport.Get(ctx, fmt.Sprintf("%s%d/stdout/?format=txt", jobsPath, execution.ID))
	if err != nil {
		s.logger.Errorf("failed to fetch stdout for job %d: %v", execution.ID, err)
	} else if matches := msgPattern.FindAllStringSubmatch(string(body), -1); len(matches) > 0 {
		message = matches[len(matches)-1][1]
	}

	return &JobExecutionError{
		JobID:   execution.ID,
		Status:  string(execution.Status),
		Message: message,
	}
}

// traceEvents logs an execution summary from the meaningful events.
func (s *Service) traceEvents(jobID int64, events []types.JobEvent) {
	for _, event := range events {
		if event.Stdout == "" || event.Verbose() {
			continue
		}
		s.logger.Infof("job %d: %s", jobID, event.Stdout)
	}
}

func NewService(
	transport aap.TransportInterface,
	paginator aap.PaginatorInterface,
	config *Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.transport = transport
	s.paginator = paginator

	s.pollInterval = config.PollInterval
	if s.pollInterval == 0 {
		s.pollInterval = 2 * time.Second
	}
	s.maxPollDuration = config.MaxPollDuration
	s.pageSize = config.PageSize
	if s.pageSize == 0 {
		s.pageSize = 100
	}

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
