// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/tracing"
)

var _ PaginatorInterface = (*Paginator)(nil)

// page is the list envelope shared by the gateway collection endpoints and
// the job event endpoints.
type page struct {
	Results []json.RawMessage `json:"results"`
	Next    *string           `json:"next"`
}

// Paginator walks a paginated collection until the server returns a null
// next cursor, concatenating every page's results in page order. It does not
// deduplicate, callers do that by id where needed.
type Paginator struct {
	transport TransportInterface
	maxPages  int

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// Collect issues one GET per page. The first request goes against firstPath,
// every following one against the server-supplied next URL verbatim, which
// may be absolute. A maxPages of 0 means unbounded, matching the remote
// contract that next eventually turns null.
func (p *Paginator) Collect(ctx context.Context, firstPath string) ([]json.RawMessage, error) {
	ctx, span := p.tracer.Start(ctx, "aap.Paginator.Collect")
	defer span.End()

	records := make([]json.RawMessage, 0)
	next := firstPath

	for pages := 0; ; pages++ {
		if p.maxPages > 0 && pages >= p.maxPages {
			return nil, &MaxPagesExceededError{Path: firstPath, MaxPages: p.maxPages}
		}

		body, err := p.fetch(ctx, next)
		if err != nil {
			return nil, err
		}

		var current page
		if err := json.Unmarshal(body, &current); err != nil {
			return nil, fmt.Errorf("failed to parse page from %s: %w", next, err)
		}

		records = append(records, current.Results...)

		p.logger.Debugf("collected page %d of %s, %d record(s) so far", pages+1, firstPath, len(records))

		if current.Next == nil || *current.Next == "" {
			return records, nil
		}
		next = *current.Next
	}
}

func (p *Paginator) fetch(ctx context.Context, pathOrURL string) ([]byte, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return p.transport.GetAbsolute(ctx, pathOrURL)
	}

	return p.transport.Get(ctx, pathOrURL)
}

// CollectAs runs p against firstPath and decodes every record into T.
func CollectAs[T any](ctx context.Context, p PaginatorInterface, firstPath string) ([]T, error) {
	records, err := p.Collect(ctx, firstPath)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		var item T
		if err := json.Unmarshal(record, &item); err != nil {
			return nil, fmt.Errorf("failed to decode record from %s: %w", firstPath, err)
		}
		out = append(out, item)
	}

	return out, nil
}

func NewPaginator(
	transport TransportInterface,
	maxPages int,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Paginator {
	p := new(Paginator)

	p.transport = transport
	p.maxPages = maxPages

	p.tracer = tracer
	p.logger = logger

	return p
}
