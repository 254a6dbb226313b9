// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "testing"

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{"successful", true},
		{"failed", true},
		{"error", true},
		{"canceled", true},
		{"SUCCESSFUL", true},
		{"Canceled", true},
		{"running", false},
		{"pending", false},
		{"waiting", false},
		{"new", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Fatalf("Terminal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestJobEventVerbose(t *testing.T) {
	if !(&JobEvent{Event: "verbose"}).Verbose() {
		t.Fatal("verbose events must be flagged")
	}
	if !(&JobEvent{Event: "Verbose"}).Verbose() {
		t.Fatal("the flag compare is case-insensitive")
	}
	if (&JobEvent{Event: "runner_on_ok"}).Verbose() {
		t.Fatal("task events are not verbose")
	}
}
