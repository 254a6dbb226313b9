// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "strings"

// Slugify lowercases s and replaces every whitespace run with a single
// hyphen. It is the one derivation used for team group names and
// organization namespaces, so equal input always yields the same slug.
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
