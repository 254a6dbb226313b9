// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import (
	"context"
	"encoding/json"
	"net/url"
)

// TransportInterface is the one way in and out of the remote automation
// platform. Paths are joined to the configured base URL; absolute URLs
// (pagination cursors) go through GetAbsolute verbatim.
type TransportInterface interface {
	Get(ctx context.Context, path string) ([]byte, error)
	GetAbsolute(ctx context.Context, fullURL string) ([]byte, error)
	Post(ctx context.Context, path string, body interface{}) ([]byte, error)
	PostForm(ctx context.Context, path string, form url.Values) ([]byte, error)
	Delete(ctx context.Context, path string) error
	BaseURL() string
}

// PaginatorInterface follows the {results,next} envelope until exhaustion.
type PaginatorInterface interface {
	Collect(ctx context.Context, firstPath string) ([]json.RawMessage, error)
}

// TokenProviderInterface yields a bearer token for outgoing calls.
type TokenProviderInterface interface {
	Token(ctx context.Context) (string, error)
}
