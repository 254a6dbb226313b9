// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Meta    *Pagination `json:"_meta,omitempty"`
}

// Pagination carries list metadata when an endpoint pages its output.
type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}
