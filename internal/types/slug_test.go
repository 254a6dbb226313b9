// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Core Team", "core-team"},
		{"core-team", "core-team"},
		{"  Spaced   Out  ", "spaced-out"},
		{"MiXeD", "mixed"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTeamGroupName(t *testing.T) {
	team := &Team{ID: 7, Organization: 1, Name: "Road Warriors"}

	if team.GroupName() != "road-warriors" {
		t.Fatalf("unexpected group name %q", team.GroupName())
	}
}

func TestOrganizationEntityNamespace(t *testing.T) {
	withNamespace := &Organization{Name: "Engineering", Namespace: "eng"}
	if withNamespace.EntityNamespace() != "eng" {
		t.Fatalf("explicit namespace must win, got %q", withNamespace.EntityNamespace())
	}

	derived := &Organization{Name: "Field Engineering"}
	if derived.EntityNamespace() != "field-engineering" {
		t.Fatalf("unexpected derived namespace %q", derived.EntityNamespace())
	}
}
