// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/scim-bulk/internal/types"
)

type StorageInterface interface {
	// Run lifecycle
	StartRun(ctx context.Context, run *types.Run) error
	RecordOutcomes(ctx context.Context, runID string, outcomes []types.OperationOutcome) error
	FinishRun(ctx context.Context, run *types.Run) error

	// Reporting
	GetRun(ctx context.Context, id string) (*types.Run, error)
	ListRuns(ctx context.Context, flow types.Flow, page, size int64) ([]*types.Run, error)
	ListOutcomes(ctx context.Context, runID string, page, size int64) ([]types.OperationOutcome, error)
}
