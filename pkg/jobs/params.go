// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package jobs

import (
	"sort"

	"github.com/canonical/aap-sync-service/internal/types"
)

// LaunchParams models a launch form. Optional numeric and boolean fields
// are pointers on purpose: an intentional 0 or false must reach the wire,
// while an absent field must stay off it entirely. Presence, not
// truthiness.
type LaunchParams struct {
	ExtraVars     map[string]interface{}
	Inventory     *int64
	Limit         *string
	Forks         *int
	Timeout       *int
	JobSliceCount *int
	DiffMode      *bool
	Verbosity     *types.Verbosity
	Credentials   []types.Credential
}

// Validate rejects launches where two or more credentials share a type,
// naming every duplicated type.
func (p *LaunchParams) Validate() error {
	seen := make(map[string]int)
	for _, c := range p.Credentials {
		seen[c.CredentialType]++
	}

	duplicated := make([]string, 0)
	for credentialType, count := range seen {
		if count > 1 {
			duplicated = append(duplicated, credentialType)
		}
	}

	if len(duplicated) > 0 {
		sort.Strings(duplicated)
		return &DuplicateCredentialTypeError{Types: duplicated}
	}

	return nil
}

// Payload builds the outgoing launch object, including a field only when
// the caller explicitly provided it.
func (p *LaunchParams) Payload() map[string]interface{} {
	payload := make(map[string]interface{})

	if p.ExtraVars != nil {
		payload["extra_vars"] = p.ExtraVars
	}
	if p.Inventory != nil {
		payload["inventory"] = *p.Inventory
	}
	if p.Limit != nil {
		payload["limit"] = *p.Limit
	}
	if p.Forks != nil {
		payload["forks"] = *p.Forks
	}
	if p.Timeout != nil {
		payload["timeout"] = *p.Timeout
	}
	if p.JobSliceCount != nil {
		payload["job_slice_count"] = *p.JobSliceCount
	}
	if p.DiffMode != nil {
		payload["diff_mode"] = *p.DiffMode
	}
	if p.Verbosity != nil {
		payload["verbosity"] = p.Verbosity.ID
	}
	if len(p.Credentials) > 0 {
		ids := make([]int64, 0, len(p.Credentials))
		for _, c := range p.Credentials {
			ids = append(ids, c.ID)
		}
		payload["credentials"] = ids
	}

	return payload
}
