// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/canonical/aap-sync-service/internal/logging"
)

func newTestPaginator(baseURL string, maxPages int) *Paginator {
	return NewPaginator(
		newTestClient(baseURL, "secret"),
		maxPages,
		&mockTracer{},
		logging.NewNoopLogger(),
	)
}

func TestPaginatorCollectSinglePage(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"results":[{"id":1},{"id":2}],"next":null}`)
	}))
	defer server.Close()

	records, err := newTestPaginator(server.URL, 0).Collect(context.TODO(), "api/gateway/v1/users/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if requests != 1 {
		t.Fatalf("expected exactly 1 request, got %d", requests)
	}
}

func TestPaginatorCollectFollowsNextUntilNull(t *testing.T) {
	// three pages, the middle one advertised as an absolute URL
	requests := make([]string, 0)
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.String())
		switch r.URL.Query().Get("page") {
		case "2":
			fmt.Fprintf(w, `{"results":[{"id":3}],"next":"/api/gateway/v1/users/?page=3"}`)
		case "3":
			fmt.Fprint(w, `{"results":[{"id":4}],"next":null}`)
		default:
			fmt.Fprintf(w, `{"results":[{"id":1},{"id":2}],"next":"%s/api/gateway/v1/users/?page=2"}`, server.URL)
		}
	}))
	defer server.Close()

	records, err := newTestPaginator(server.URL, 0).Collect(context.TODO(), "api/gateway/v1/users/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ids := make([]int64, 0)
	for _, record := range records {
		var row struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(record, &row); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, row.ID)
	}

	if !reflect.DeepEqual(ids, []int64{1, 2, 3, 4}) {
		t.Fatalf("expected records in page order, got %v", ids)
	}
	if len(requests) != 3 {
		t.Fatalf("expected exactly 3 requests, got %d", len(requests))
	}
}

func TestPaginatorCollectMaxPagesGuard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// never-ending collection
		fmt.Fprint(w, `{"results":[{"id":1}],"next":"/api/gateway/v1/users/?page=2"}`)
	}))
	defer server.Close()

	_, err := newTestPaginator(server.URL, 3).Collect(context.TODO(), "api/gateway/v1/users/")

	var maxPagesErr *MaxPagesExceededError
	if !errors.As(err, &maxPagesErr) {
		t.Fatalf("expected MaxPagesExceededError, got %v", err)
	}
	if maxPagesErr.MaxPages != 3 {
		t.Fatalf("expected guard at 3 pages, got %d", maxPagesErr.MaxPages)
	}
}

func TestCollectAsDecodesRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":7,"username":"alice"}],"next":null}`)
	}))
	defer server.Close()

	type row struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}

	rows, err := CollectAs[row](context.TODO(), newTestPaginator(server.URL, 0), "api/gateway/v1/users/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(rows, []row{{ID: 7, Username: "alice"}}) {
		t.Fatalf("unexpected rows %v", rows)
	}
}
