// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canonical/aap-sync-service/internal/types"
)

// CreateJobTemplateRequest bundles the template payload with the context
// needed for the scm credential url rewrite.
type CreateJobTemplateRequest struct {
	Template *types.JobTemplate

	// Credential is the credential attached to the template, its Kind
	// drives the usecase url rewrite.
	Credential *types.Credential
	// SCMType selects which source-control integration supplies the basic
	// auth for the rewrite, github or gitlab.
	SCMType string

	DeleteIfExist bool
}

func (s *Service) DeleteJobTemplateIfExists(ctx context.Context, name string, organization int64) error {
	ctx, span := s.tracer.Start(ctx, "resources.Service.DeleteJobTemplateIfExists")
	defer span.End()

	return s.deleteIfExists(ctx, jobTemplatesPath, name, organization)
}

func (s *Service) CreateJobTemplate(ctx context.Context, req *CreateJobTemplateRequest) (*types.JobTemplate, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.CreateJobTemplate")
	defer span.End()

	template := req.Template

	if err := s.validate.Struct(template); err != nil {
		return nil, fmt.Errorf("invalid job template payload: %w", err)
	}

	if req.DeleteIfExist {
		if err := s.deleteIfExists(ctx, jobTemplatesPath, template.Name, template.Organization); err != nil {
			return nil, err
		}
	}

	extraVars := template.ExtraVariables
	if req.Credential != nil && strings.EqualFold(req.Credential.Kind, "scm") {
		username, password, err := s.scmCredentials(req.SCMType)
		if err != nil {
			return nil, err
		}
		extraVars = RewriteUsecaseURLs(extraVars, username, password)
	}

	serialized, err := serializeExtraVars(extraVars, s.validateCerts, s.transport.BaseURL())
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"name":         template.Name,
		"description":  template.Description,
		"job_type":     template.JobType,
		"inventory":    template.Inventory,
		"project":      template.Project,
		"playbook":     template.Playbook,
		"organization": template.Organization,
	}
	if serialized != "" {
		payload["extra_vars"] = serialized
	}
	if len(template.Credentials) > 0 {
		payload["credentials"] = template.Credentials
	}

	body, err := s.transport.Post(ctx, jobTemplatesPath, payload)
	if err != nil {
		return nil, err
	}

	created := new(types.JobTemplate)
	if err := json.Unmarshal(body, created); err != nil {
		return nil, fmt.Errorf("failed to parse created job template: %w", err)
	}

	created.URL = fmt.Sprintf("%s/execution/templates/job-template/%d/details", s.transport.BaseURL(), created.ID)

	return created, nil
}

// scmCredentials picks the integration matching the project's scm type.
func (s *Service) scmCredentials(scmType string) (string, string, error) {
	switch strings.ToLower(scmType) {
	case "github":
		return s.scm.GithubUsername, s.scm.GithubToken, nil
	case "gitlab":
		return s.scm.GitlabUsername, s.scm.GitlabToken, nil
	}

	return "", "", fmt.Errorf("no source-control integration for scm type %q", scmType)
}
