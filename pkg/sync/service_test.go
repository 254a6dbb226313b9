// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_sync.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_storage.go -source=../../internal/storage/interfaces.go

func TestFullSync(t *testing.T) {
	boom := errors.New("gateway unreachable")

	memberships := []*types.OrganizationMembership{
		{
			Organization: &types.Organization{ID: 1, Name: "Engineering"},
			Teams:        []*types.Team{{ID: 7, Organization: 1, Name: "Core Team"}},
			Users:        []*types.User{{ID: 100, Username: "alice"}, {ID: 200, Username: "bob"}},
		},
	}
	roles := types.RoleAssignments{100: {"Admin": {1}}}

	tests := []struct {
		name string

		setupMocks func(*MockAggregatorInterface, *MockStorageInterface)

		expectedStatus types.SyncRunStatus
		expectedError  error
	}{
		{
			name: "successful run replaces the catalog and counts entities",
			setupMocks: func(aggregator *MockAggregatorInterface, store *MockStorageInterface) {
				store.EXPECT().BeginSyncRun(gomock.Any(), gomock.Any()).Return(nil)
				aggregator.EXPECT().BuildMembershipGraph(gomock.Any()).Return(memberships, nil)
				aggregator.EXPECT().CollectRoleAssignments(gomock.Any()).Return(roles, nil)
				store.EXPECT().ReplaceCatalog(gomock.Any(), memberships, roles, "aap:aap.example.com").Return(nil)
				store.EXPECT().FinishSyncRun(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: types.SyncRunStatusSucceeded,
		},
		{
			name: "aggregation failure marks the run failed and skips the replace",
			setupMocks: func(aggregator *MockAggregatorInterface, store *MockStorageInterface) {
				store.EXPECT().BeginSyncRun(gomock.Any(), gomock.Any()).Return(nil)
				aggregator.EXPECT().BuildMembershipGraph(gomock.Any()).Return(nil, boom)
				store.EXPECT().FinishSyncRun(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: types.SyncRunStatusFailed,
			expectedError:  boom,
		},
		{
			name: "replace failure marks the run failed",
			setupMocks: func(aggregator *MockAggregatorInterface, store *MockStorageInterface) {
				store.EXPECT().BeginSyncRun(gomock.Any(), gomock.Any()).Return(nil)
				aggregator.EXPECT().BuildMembershipGraph(gomock.Any()).Return(memberships, nil)
				aggregator.EXPECT().CollectRoleAssignments(gomock.Any()).Return(roles, nil)
				store.EXPECT().ReplaceCatalog(gomock.Any(), memberships, roles, "aap:aap.example.com").Return(boom)
				store.EXPECT().FinishSyncRun(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: types.SyncRunStatusFailed,
			expectedError:  boom,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			aggregator := NewMockAggregatorInterface(ctrl)
			reconciler := NewMockReconcilerInterface(ctrl)
			store := NewMockStorageInterface(ctrl)

			reconciler.EXPECT().Connect(store)
			test.setupMocks(aggregator, store)

			service := NewService(
				aggregator,
				reconciler,
				store,
				"aap:aap.example.com",
				new(mockTracer),
				new(mockMonitor),
				logging.NewNoopLogger(),
			)

			run, err := service.FullSync(context.Background())

			if !errors.Is(err, test.expectedError) {
				t.Fatalf("expected error to be %v not %v", test.expectedError, err)
			}
			if run.Status != test.expectedStatus {
				t.Fatalf("expected status %q, got %q", test.expectedStatus, run.Status)
			}
			if run.ID == "" || run.FinishedAt == nil {
				t.Fatal("run must carry an id and a finish timestamp")
			}

			if test.expectedError == nil {
				if run.Organizations != 1 || run.Teams != 1 || run.Users != 2 {
					t.Fatalf("unexpected counts %+v", run)
				}
			}
		})
	}
}

func TestLocationKey(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"https://aap.example.com", "aap:aap.example.com"},
		{"https://aap.example.com:8443/", "aap:aap.example.com:8443"},
		{"not a url", "aap:not a url"},
	}

	for _, tt := range tests {
		if got := LocationKey(tt.baseURL); got != tt.want {
			t.Fatalf("LocationKey(%q) = %q, want %q", tt.baseURL, got, tt.want)
		}
	}
}
