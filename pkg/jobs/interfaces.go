// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package jobs

import (
	"context"

	"github.com/canonical/aap-sync-service/internal/types"
)

type ServiceInterface interface {
	LaunchJob(ctx context.Context, templateName string, params *LaunchParams) (*types.JobExecution, error)
	ResolveTemplateID(ctx context.Context, name string) (int64, error)
}
