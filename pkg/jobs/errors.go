// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package jobs

import (
	"fmt"
	"strings"
)

// UndefinedErrorMessage is the fixed diagnosis fallback used when the
// stdout fetch itself fails. Diagnosis failures never mask the original job
// failure.
const UndefinedErrorMessage = "Undefined Error. Please check the portal for job execution logs."

// JobExecutionError carries the best-effort diagnosis of a terminal
// non-successful job.
type JobExecutionError struct {
	JobID   int64
	Status  string
	Message string
}

func (e *JobExecutionError) Error() string {
	return fmt.Sprintf("Job execution failed due to %s", e.Message)
}

// TemplateNotFoundError is raised when the exact-name template lookup comes
// back empty.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("No job template found with name: %s", e.Name)
}

// DuplicateCredentialTypeError rejects a launch carrying two or more
// credentials of the same type, before any network call.
type DuplicateCredentialTypeError struct {
	Types []string
}

func (e *DuplicateCredentialTypeError) Error() string {
	return fmt.Sprintf("duplicate credential types in launch request: %s", strings.Join(e.Types, ", "))
}
