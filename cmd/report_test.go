// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/scim-bulk/internal/storage"
	"github.com/canonical/scim-bulk/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package cmd -destination ./mock_storage.go -source=../internal/storage/interfaces.go

func TestWriteRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)

	run := &types.Run{
		ID:         "run-1",
		Flow:       types.FlowDelete,
		Source:     "leavers.csv",
		StartedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC),
		Succeeded:  1,
		Failed:     1,
	}
	outcomes := []types.OperationOutcome{
		{Batch: 1, BulkID: "del-0001", Method: "DELETE", Path: "/Users/a", Status: 204, Succeeded: true},
		{Batch: 1, BulkID: "del-0002", Method: "DELETE", Path: "/Users/b", Status: 404, Detail: "gone"},
	}

	mockStorage.EXPECT().GetRun(gomock.Any(), "run-1").Return(run, nil)
	mockStorage.EXPECT().ListOutcomes(gomock.Any(), "run-1", int64(1), int64(50)).Return(outcomes, nil)

	buf := new(bytes.Buffer)
	if err := writeRun(context.Background(), buf, mockStorage, "run-1", 1, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc runDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid output: %v", err)
	}
	if doc.Run.ID != "run-1" || doc.Run.Flow != types.FlowDelete {
		t.Fatalf("unexpected run: %+v", doc.Run)
	}
	if len(doc.Outcomes) != 2 || doc.Outcomes[1].Detail != "gone" {
		t.Fatalf("unexpected outcomes: %+v", doc.Outcomes)
	}
}

func TestWriteRunNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().GetRun(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	err := writeRun(context.Background(), new(bytes.Buffer), mockStorage, "missing", 1, 0)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteRuns(t *testing.T) {
	tests := []struct {
		name      string
		runs      []*types.Run
		err       error
		expectLen int
		expectErr bool
	}{
		{
			name:      "lists runs",
			runs:      []*types.Run{{ID: "b", Flow: types.FlowImport}, {ID: "a", Flow: types.FlowImport}},
			expectLen: 2,
		},
		{
			name: "no runs",
			runs: []*types.Run{},
		},
		{
			name:      "storage error",
			err:       errors.New("connection refused"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockStorage.EXPECT().ListRuns(gomock.Any(), types.FlowImport, int64(2), int64(10)).Return(tt.runs, tt.err)

			buf := new(bytes.Buffer)
			err := writeRuns(context.Background(), buf, mockStorage, types.FlowImport, 2, 10)

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var runs []types.Run
			if err := json.Unmarshal(buf.Bytes(), &runs); err != nil {
				t.Fatalf("invalid output: %v", err)
			}
			if len(runs) != tt.expectLen {
				t.Fatalf("expected %d runs, got %d", tt.expectLen, len(runs))
			}
		})
	}
}
