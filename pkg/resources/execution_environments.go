// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/canonical/aap-sync-service/internal/types"
)

func (s *Service) DeleteExecutionEnvironmentIfExists(ctx context.Context, name string, organization int64) error {
	ctx, span := s.tracer.Start(ctx, "resources.Service.DeleteExecutionEnvironmentIfExists")
	defer span.End()

	return s.deleteIfExists(ctx, executionEnvironmentsPath, name, organization)
}

func (s *Service) CreateExecutionEnvironment(ctx context.Context, ee *types.ExecutionEnvironment, deleteIfExist bool) (*types.ExecutionEnvironment, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.CreateExecutionEnvironment")
	defer span.End()

	if err := s.validate.Struct(ee); err != nil {
		return nil, fmt.Errorf("invalid execution environment payload: %w", err)
	}

	if deleteIfExist {
		if err := s.deleteIfExists(ctx, executionEnvironmentsPath, ee.Name, ee.Organization); err != nil {
			return nil, err
		}
	}

	body, err := s.transport.Post(ctx, executionEnvironmentsPath, ee)
	if err != nil {
		return nil, err
	}

	created := new(types.ExecutionEnvironment)
	if err := json.Unmarshal(body, created); err != nil {
		return nil, fmt.Errorf("failed to parse created execution environment: %w", err)
	}

	created.URL = fmt.Sprintf("%s/execution/infrastructure/execution-environments/%d/details", s.transport.BaseURL(), created.ID)

	return created, nil
}
