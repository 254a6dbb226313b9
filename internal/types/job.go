// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "strings"

type JobStatus string

const (
	JobStatusSuccessful JobStatus = "successful"
	JobStatusFailed     JobStatus = "failed"
	JobStatusError      JobStatus = "error"
	JobStatusCanceled   JobStatus = "canceled"
	JobStatusRunning    JobStatus = "running"
	JobStatusPending    JobStatus = "pending"
	JobStatusWaiting    JobStatus = "waiting"
	JobStatusNew        JobStatus = "new"
)

// Terminal reports whether no further state transition can occur.
// The comparison is case-insensitive, the platform is not consistent about
// status casing across endpoints.
func (s JobStatus) Terminal() bool {
	switch JobStatus(strings.ToLower(string(s))) {
	case JobStatusSuccessful, JobStatusFailed, JobStatusError, JobStatusCanceled:
		return true
	}

	return false
}

// Successful is case-insensitive like Terminal.
func (s JobStatus) Successful() bool {
	return strings.EqualFold(string(s), string(JobStatusSuccessful))
}

// JobEvent is a single event row of a job run.
type JobEvent struct {
	ID        int64                  `json:"id"`
	Event     string                 `json:"event"`
	Stdout    string                 `json:"stdout"`
	EventData map[string]interface{} `json:"event_data,omitempty"`
}

// Verbose reports whether the event is platform chatter rather than task
// output.
func (e *JobEvent) Verbose() bool {
	return strings.EqualFold(e.Event, "verbose")
}

// JobExecution is the outcome of driving one job to a terminal status.
type JobExecution struct {
	ID     int64      `json:"id"`
	Status JobStatus  `json:"status"`
	Events []JobEvent `json:"events"`
	URL    string     `json:"url"`
}

// Verbosity wraps the numeric verbosity choice of a launch form.
type Verbosity struct {
	ID int `json:"id"`
}

// Credential references a platform credential by id; Kind and
// CredentialType come from the credential's summary and drive the
// duplicate-type check and the scm url rewrite.
type Credential struct {
	ID             int64  `json:"id"`
	Name           string `json:"name,omitempty"`
	Kind           string `json:"kind,omitempty"`
	CredentialType string `json:"credential_type,omitempty"`
}
