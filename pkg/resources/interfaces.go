// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"

	"github.com/canonical/aap-sync-service/internal/types"
)

type ServiceInterface interface {
	CreateProject(ctx context.Context, project *types.Project, deleteIfExist bool) (*types.Project, error)
	DeleteProjectIfExists(ctx context.Context, name string, organization int64) error

	CreateExecutionEnvironment(ctx context.Context, ee *types.ExecutionEnvironment, deleteIfExist bool) (*types.ExecutionEnvironment, error)
	DeleteExecutionEnvironmentIfExists(ctx context.Context, name string, organization int64) error

	CreateJobTemplate(ctx context.Context, req *CreateJobTemplateRequest) (*types.JobTemplate, error)
	DeleteJobTemplateIfExists(ctx context.Context, name string, organization int64) error
}
