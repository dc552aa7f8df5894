// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/scim-bulk/internal/db"
	"github.com/canonical/scim-bulk/internal/types"
)

var runColumns = []string{"id", "flow", "source", "dry_run", "started_at", "finished_at", "succeeded", "failed", "skipped"}

// StartRun inserts a new run row.
func (s *Storage) StartRun(ctx context.Context, run *types.Run) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.StartRun")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("bulk_runs").
		Columns("id", "flow", "source", "dry_run", "started_at", "succeeded", "failed", "skipped").
		Values(run.ID, run.Flow, run.Source, run.DryRun, run.StartedAt, run.Succeeded, run.Failed, run.Skipped).
		ExecContext(ctx)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return WrapDuplicateKeyError(err, "run already exists")
		}
		return fmt.Errorf("failed to insert run: %v", err)
	}

	return nil
}

// FinishRun stores the final counters and end time of a run.
func (s *Storage) FinishRun(ctx context.Context, run *types.Run) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.FinishRun")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("bulk_runs").
		Set("finished_at", run.FinishedAt).
		Set("succeeded", run.Succeeded).
		Set("failed", run.Failed).
		Set("skipped", run.Skipped).
		Where(sq.Eq{"id": run.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update run: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update run: %v", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetRun(ctx context.Context, id string) (*types.Run, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetRun")
	defer span.End()

	// run ids are uuids, anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := s.db.Statement(ctx).
		Select(runColumns...).
		From("bulk_runs").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %v", err)
	}

	return run, nil
}

// ListRuns returns runs newest first. An empty flow matches every flow.
func (s *Storage) ListRuns(ctx context.Context, flow types.Flow, page, size int64) ([]*types.Run, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListRuns")
	defer span.End()

	pageSize := db.PageSize(size)

	q := s.db.Statement(ctx).
		Select(runColumns...).
		From("bulk_runs").
		OrderBy("started_at DESC").
		Limit(pageSize).
		Offset(db.Offset(page, pageSize))
	if flow != "" {
		q = q.Where(sq.Eq{"flow": flow})
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %v", err)
	}
	defer rows.Close()

	runs := make([]*types.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %v", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %v", err)
	}

	return runs, nil
}

func scanRun(row interface{ Scan(...interface{}) error }) (*types.Run, error) {
	run := new(types.Run)
	var finishedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.Flow,
		&run.Source,
		&run.DryRun,
		&run.StartedAt,
		&finishedAt,
		&run.Succeeded,
		&run.Failed,
		&run.Skipped,
	)
	if err != nil {
		return nil, err
	}

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return run, nil
}
