// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

// Organization is owned by the remote automation platform and read-only to
// this service.
type Organization struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace,omitempty"`
	Related   map[string]string `json:"related,omitempty"`
}

// EntityNamespace returns the configured namespace, defaulting to a slug of
// the organization name.
func (o *Organization) EntityNamespace() string {
	if o.Namespace != "" {
		return o.Namespace
	}

	return Slugify(o.Name)
}

type Team struct {
	ID           int64             `json:"id"`
	Organization int64             `json:"organization"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Related      map[string]string `json:"related,omitempty"`
}

// GroupName is the catalog group slug derived from the team name.
func (t *Team) GroupName() string {
	return Slugify(t.Name)
}

type User struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	IsSuperuser bool `json:"is_superuser"`
	// IsOrgUser distinguishes direct organization members from team-only or
	// system-only users. Set by the aggregator, not the remote platform.
	IsOrgUser bool `json:"is_orguser"`
}

// OrganizationMembership is one organization's slice of the membership graph:
// its teams and its de-duplicated user list.
type OrganizationMembership struct {
	Organization *Organization `json:"organization"`
	Teams        []*Team       `json:"teams"`
	Users        []*User       `json:"users"`
}

// RoleAssignments maps user id -> role definition name -> object ids.
// A role name present with an empty list means the user holds the role with
// no scope attached.
type RoleAssignments map[int64]map[string][]int64

// RoleUserAssignment is one entry of the flat role assignment collection.
type RoleUserAssignment struct {
	User     int64  `json:"user"`
	ObjectID *int64 `json:"object_id"`

	SummaryFields struct {
		RoleDefinition struct {
			Name string `json:"name"`
		} `json:"role_definition"`
	} `json:"summary_fields"`
}

// RoleName returns the role definition name, empty when the entry carries
// none.
func (r *RoleUserAssignment) RoleName() string {
	return r.SummaryFields.RoleDefinition.Name
}
