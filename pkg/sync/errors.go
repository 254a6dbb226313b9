// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"fmt"
	"strings"
)

// NotInitializedError is returned when a delta reconciliation is requested
// before a mutation sink has been connected.
type NotInitializedError struct {
	Operation string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s called before a mutation sink was connected", e.Operation)
}

// ReconciliationRejectedError is returned when a user fails the inclusion
// policy. Rejection is explicit, not silent, and names the configured
// organization filter.
type ReconciliationRejectedError struct {
	Username      string
	Organizations []string
}

func (e *ReconciliationRejectedError) Error() string {
	return fmt.Sprintf(
		"user %q does not belong to any of the configured organizations [%s], has no team membership in them and is not a superuser",
		e.Username, strings.Join(e.Organizations, ", "),
	)
}

// AggregationError voids a whole membership build. Partial results are
// discarded, the root endpoint is named for the operator.
type AggregationError struct {
	Endpoint string
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation rooted at %s failed: %v", e.Endpoint, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
