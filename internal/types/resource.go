// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

// Resource is a generic remote platform record, kept opaque where the
// service does not depend on its shape.
type Resource map[string]interface{}

// ID extracts the numeric identity of a record, 0 when absent.
func (r Resource) ID() int64 {
	switch v := r["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}

	return 0
}

// Project is a source-control backed project on the automation platform.
// URL is stamped by this service after creation for human navigation and is
// never sent back to the platform.
type Project struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description,omitempty"`
	Organization int64  `json:"organization" validate:"required"`
	SCMType      string `json:"scm_type,omitempty"`
	SCMURL       string `json:"scm_url,omitempty"`
	SCMBranch    string `json:"scm_branch,omitempty"`
	Credential   *int64 `json:"credential,omitempty"`
	Status       string `json:"status,omitempty"`

	URL string `json:"url,omitempty"`
}

type ExecutionEnvironment struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description,omitempty"`
	Organization int64  `json:"organization" validate:"required"`
	Image        string `json:"image" validate:"required"`
	Pull         string `json:"pull,omitempty"`

	URL string `json:"url,omitempty"`
}

type JobTemplate struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	Inventory    int64  `json:"inventory,omitempty"`
	Project      int64  `json:"project" validate:"required"`
	Playbook     string `json:"playbook" validate:"required"`
	Organization int64  `json:"organization" validate:"required"`

	// ExtraVariables is serialized to a YAML extra_vars document at
	// creation time, it is not part of the wire payload as-is.
	ExtraVariables map[string]interface{} `json:"-"`
	Credentials    []int64                `json:"-"`

	URL string `json:"url,omitempty"`
}
