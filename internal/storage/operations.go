// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/scim-bulk/internal/db"
	"github.com/canonical/scim-bulk/internal/types"
)

// RecordOutcomes appends the outcomes of one batch to a run.
func (s *Storage) RecordOutcomes(ctx context.Context, runID string, outcomes []types.OperationOutcome) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.RecordOutcomes")
	defer span.End()

	if len(outcomes) == 0 {
		return nil
	}

	q := s.db.Statement(ctx).
		Insert("bulk_operations").
		Columns("run_id", "batch", "bulk_id", "method", "path", "status", "succeeded", "detail", "scim_type")

	for _, o := range outcomes {
		q = q.Values(runID, o.Batch, o.BulkID, o.Method, o.Path, o.Status, o.Succeeded, o.Detail, o.ScimType)
	}

	if _, err := q.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert outcomes: %v", err)
	}

	return nil
}

// ListOutcomes returns the outcomes of a run in submission order.
func (s *Storage) ListOutcomes(ctx context.Context, runID string, page, size int64) ([]types.OperationOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListOutcomes")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select("batch", "bulk_id", "method", "path", "status", "succeeded", "detail", "scim_type").
		From("bulk_operations").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("id ASC").
		Limit(pageSize).
		Offset(db.Offset(page, pageSize)).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %v", err)
	}
	defer rows.Close()

	outcomes := make([]types.OperationOutcome, 0)
	for rows.Next() {
		var o types.OperationOutcome
		if err := rows.Scan(&o.Batch, &o.BulkID, &o.Method, &o.Path, &o.Status, &o.Succeeded, &o.Detail, &o.ScimType); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %v", err)
		}
		outcomes = append(outcomes, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outcomes: %v", err)
	}

	return outcomes, nil
}
