// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/canonical/aap-sync-service/internal/types"
)

// projectDetail is the slice of the project record the readiness loop
// depends on.
type projectDetail struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	SummaryFields struct {
		LastJob struct {
			ID int64 `json:"id"`
		} `json:"last_job"`
	} `json:"summary_fields"`
}

func (s *Service) DeleteProjectIfExists(ctx context.Context, name string, organization int64) error {
	ctx, span := s.tracer.Start(ctx, "resources.Service.DeleteProjectIfExists")
	defer span.End()

	return s.deleteIfExists(ctx, projectsPath, name, organization)
}

// CreateProject provisions a project and waits for its initial source
// update to settle. A terminal failed/error/canceled update turns into an
// error carrying the update's first usable failure message.
func (s *Service) CreateProject(ctx context.Context, project *types.Project, deleteIfExist bool) (*types.Project, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.CreateProject")
	defer span.End()

	if err := s.validate.Struct(project); err != nil {
		return nil, fmt.Errorf("invalid project payload: %w", err)
	}

	if deleteIfExist {
		if err := s.deleteIfExists(ctx, projectsPath, project.Name, project.Organization); err != nil {
			return nil, err
		}
	}

	body, err := s.transport.Post(ctx, projectsPath, project)
	if err != nil {
		return nil, err
	}

	created := new(types.Project)
	if err := json.Unmarshal(body, created); err != nil {
		return nil, fmt.Errorf("failed to parse created project: %w", err)
	}

	detail, err := s.waitForProjectReady(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	created.Status = detail.Status
	created.URL = fmt.Sprintf("%s/execution/projects/%d/details", s.transport.BaseURL(), created.ID)

	return created, nil
}

// waitForProjectReady polls until the project status leaves the in-flight
// set. MaxPollDuration of 0 preserves the unbounded source behavior.
func (s *Service) waitForProjectReady(ctx context.Context, id int64) (*projectDetail, error) {
	deadline := time.Time{}
	if s.maxPollDuration > 0 {
		deadline = time.Now().Add(s.maxPollDuration)
	}

	for {
		body, err := s.transport.Get(ctx, fmt.Sprintf("%s%d/", projectsPath, id))
		if err != nil {
			return nil, err
		}

		detail := new(projectDetail)
		if err := json.Unmarshal(body, detail); err != nil {
			return nil, fmt.Errorf("failed to parse project detail: %w", err)
		}

		switch detail.Status {
		case "new", "pending", "waiting", "running":
		case "failed", "error", "canceled":
			return nil, fmt.Errorf("project %d ended in status %q: %s", id, detail.Status, s.projectFailureMessage(ctx, detail))
		default:
			return detail, nil
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, fmt.Errorf("project %d did not become ready within %s", id, s.maxPollDuration)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
}

// projectFailureMessage pulls event_data.res.msg from the first matching
// event of the project's last update job. Best effort, diagnosis failures
// never mask the original one.
func (s *Service) projectFailureMessage(ctx context.Context, detail *projectDetail) string {
	const fallback = "no failure details available"

	jobID := detail.SummaryFields.LastJob.ID
	if jobID == 0 {
		return fallback
	}

	body, err := s.transport.Get(ctx, fmt.Sprintf("%s%d/events/", projectUpdatesPath, jobID))
	if err != nil {
		s.logger.Errorf("failed to fetch events for project update %d: %v", jobID, err)
		return fallback
	}

	var page struct {
		Results []types.JobEvent `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		s.logger.Errorf("failed to parse events for project update %d: %v", jobID, err)
		return fallback
	}

	for _, event := range page.Results {
		if msg := eventFailureMessage(&event); msg != "" {
			return msg
		}
	}

	return fallback
}

// eventFailureMessage digs event_data.res.msg out of one event.
func eventFailureMessage(event *types.JobEvent) string {
	res, ok := event.EventData["res"].(map[string]interface{})
	if !ok {
		return ""
	}

	msg, _ := res["msg"].(string)

	return msg
}
