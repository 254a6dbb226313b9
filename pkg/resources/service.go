// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/aap-sync-service/internal/aap"
	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
	"github.com/canonical/aap-sync-service/internal/types"
)

const (
	projectsPath              = "api/controller/v2/projects/"
	executionEnvironmentsPath = "api/controller/v2/execution_environments/"
	jobTemplatesPath          = "api/controller/v2/job_templates/"
	projectUpdatesPath        = "api/controller/v2/project_updates/"
)

var _ ServiceInterface = (*Service)(nil)

// SCMIntegrations carries the source-control credentials used to rewrite
// usecase URLs when a job template's credential is of kind scm.
type SCMIntegrations struct {
	GithubUsername string
	GithubToken    string
	GitlabUsername string
	GitlabToken    string
}

// Config tunes the lifecycle manager's readiness polling.
type Config struct {
	PollInterval    time.Duration
	MaxPollDuration time.Duration
	ValidateCerts   bool

	SCM SCMIntegrations
}

// Service implements idempotent create/delete for the three remote resource
// kinds. Delete-then-create is always scoped by (organization, name), never
// by id alone.
type Service struct {
	transport aap.TransportInterface

	pollInterval    time.Duration
	maxPollDuration time.Duration
	validateCerts   bool
	scm             SCMIntegrations

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// listEnvelope is the single-page shape used by the (organization, name)
// scoped lookups. deleteIfExists acts only on an exact single match, so the
// first page is all it ever needs.
type listEnvelope struct {
	Count   int64             `json:"count"`
	Results []json.RawMessage `json:"results"`
}

func (s *Service) findByNameInOrg(ctx context.Context, resourcePath, name string, organization int64) ([]types.Resource, error) {
	query := url.Values{}
	query.Set("organization", strconv.FormatInt(organization, 10))
	query.Set("name", name)

	body, err := s.transport.Get(ctx, resourcePath+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var page listEnvelope
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse listing of %s: %w", resourcePath, err)
	}

	matches := make([]types.Resource, 0, len(page.Results))
	for _, raw := range page.Results {
		var r types.Resource
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("failed to parse record from %s: %w", resourcePath, err)
		}
		matches = append(matches, r)
	}

	return matches, nil
}

// deleteIfExists removes the resource named name in organization when
// exactly one match exists. Zero or multiple matches are silently skipped:
// this is best-effort cleanup, not a precondition check.
func (s *Service) deleteIfExists(ctx context.Context, resourcePath, name string, organization int64) error {
	matches, err := s.findByNameInOrg(ctx, resourcePath, name, organization)
	if err != nil {
		return err
	}

	if len(matches) != 1 {
		s.logger.Debugf("skipping delete of %q in organization %d, found %d matches", name, organization, len(matches))
		return nil
	}

	return s.transport.Delete(ctx, fmt.Sprintf("%s%d/", resourcePath, matches[0].ID()))
}

func NewService(
	transport aap.TransportInterface,
	config *Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.transport = transport

	s.pollInterval = config.PollInterval
	if s.pollInterval == 0 {
		s.pollInterval = 2 * time.Second
	}
	s.maxPollDuration = config.MaxPollDuration
	s.validateCerts = config.ValidateCerts
	s.scm = config.SCM

	s.validate = validator.New()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
