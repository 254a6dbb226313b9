// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"github.com/canonical/aap-sync-service/internal/types"
)

// FoldRoleAssignments collapses the flat assignment list into user id ->
// role name -> object ids. Entries without a role definition name are
// skipped. An entry with a role name but no object id still creates the
// role key with an empty list, holding a role with no scope is not the same
// as not holding it.
func FoldRoleAssignments(entries []types.RoleUserAssignment) types.RoleAssignments {
	assignments := make(types.RoleAssignments)

	for i := range entries {
		entry := &entries[i]

		roleName := entry.RoleName()
		if roleName == "" {
			continue
		}

		userRoles, ok := assignments[entry.User]
		if !ok {
			userRoles = make(map[string][]int64)
			assignments[entry.User] = userRoles
		}

		if _, ok := userRoles[roleName]; !ok {
			userRoles[roleName] = make([]int64, 0)
		}

		if entry.ObjectID != nil {
			userRoles[roleName] = append(userRoles[roleName], *entry.ObjectID)
		}
	}

	return assignments
}
