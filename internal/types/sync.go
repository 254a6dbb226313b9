// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "time"

type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusSucceeded SyncRunStatus = "succeeded"
	SyncRunStatusFailed    SyncRunStatus = "failed"
)

// SyncRun is the bookkeeping record of one full reconciliation.
type SyncRun struct {
	ID            string        `json:"id"`
	Status        SyncRunStatus `json:"status"`
	Organizations int           `json:"organizations"`
	Teams         int           `json:"teams"`
	Users         int           `json:"users"`
	Error         string        `json:"error,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    *time.Time    `json:"finished_at,omitempty"`
}

// UserEntityDelta is the add-only update emitted by the single-user
// reconciler: one user and the catalog group names it belongs to, tagged
// with the producing provider's location key.
type UserEntityDelta struct {
	User        *User    `json:"user"`
	Groups      []string `json:"groups"`
	LocationKey string   `json:"location_key"`
}
