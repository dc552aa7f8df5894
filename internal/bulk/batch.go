// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package bulk

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/scim"
	"github.com/canonical/scim-bulk/internal/types"
)

const unknownBulkID = "unknown"

var ErrInvalidBatchSize = errors.New("batch size must be greater than zero")

// chunks splits items into consecutive slices of at most size elements,
// preserving order.
func chunks[T any](items []T, size int) [][]T {
	out := make([][]T, 0, (len(items)+size-1)/size)
	for c := range slices.Chunk(items, size) {
		out = append(out, c)
	}
	return out
}

type batchResult struct {
	succeeded int
	failed    int
	outcomes  []types.OperationOutcome
}

// reconcile counts the outcome of every operation in a bulk response. A
// response without an Operations list contributes nothing to either count.
func reconcile(batch int, ops []scim.Operation, resp *scim.BulkResponse, logger logging.LoggerInterface) batchResult {
	r := batchResult{}

	if !resp.HasOperations() {
		logger.Errorf("Batch %d - Invalid bulk response format", batch)
		return r
	}

	sent := make(map[string]scim.Operation, len(ops))
	for _, op := range ops {
		sent[op.BulkID] = op
	}

	r.outcomes = make([]types.OperationOutcome, 0, len(resp.Operations))
	for _, op := range resp.Operations {
		bulkID := op.BulkID
		if bulkID == "" {
			bulkID = unknownBulkID
		}

		outcome := types.OperationOutcome{
			Batch:  batch,
			BulkID: bulkID,
			Method: op.Method,
			Status: op.Status.Code,
		}
		if req, ok := sent[op.BulkID]; ok {
			outcome.Method = req.Method
			outcome.Path = req.Path
		}

		if !op.Status.Valid && op.Status.Raw != "" {
			logger.Warnf("Batch %d - invalid status value: %q (bulkId=%s)", batch, op.Status.Raw, bulkID)
		}

		if op.Status.IsSuccess() {
			r.succeeded++
			outcome.Succeeded = true
		} else {
			r.failed++
			outcome.Detail, outcome.ScimType = op.ErrorDetail()
			logger.Warnf("Batch %d - bulkId=%s failed (%d) %s: %s", batch, bulkID, op.Status.Code, outcome.ScimType, outcome.Detail)
		}

		r.outcomes = append(r.outcomes, outcome)
	}

	logger.Infof("Batch %d summary: %d succeeded, %d failed", batch, r.succeeded, r.failed)

	return r
}

// failBatch marks every operation of a batch that could not be submitted.
func failBatch(batch int, ops []scim.Operation, err error) batchResult {
	r := batchResult{failed: len(ops)}

	r.outcomes = make([]types.OperationOutcome, 0, len(ops))
	for _, op := range ops {
		r.outcomes = append(r.outcomes, types.OperationOutcome{
			Batch:  batch,
			BulkID: op.BulkID,
			Method: op.Method,
			Path:   op.Path,
			Detail: err.Error(),
		})
	}

	return r
}

// recorder forwards run progress to the journal and the monitor. Failures
// are logged and never interrupt the run.
type recorder struct {
	flow types.Flow

	journal JournalInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *recorder) start(ctx context.Context, source string, dryRun bool) *types.Run {
	run := &types.Run{
		ID:        uuid.NewString(),
		Flow:      r.flow,
		Source:    source,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}

	if err := r.journal.StartRun(ctx, run); err != nil {
		r.logger.Errorf("Failed to journal %s run %s: %v", r.flow, run.ID, err)
	}

	return run
}

func (r *recorder) batch(ctx context.Context, run *types.Run, res batchResult) {
	run.Succeeded += res.succeeded
	run.Failed += res.failed

	if len(res.outcomes) > 0 {
		if err := r.journal.RecordOutcomes(ctx, run.ID, res.outcomes); err != nil {
			r.logger.Errorf("Failed to journal outcomes of run %s: %v", run.ID, err)
		}
	}

	r.count("succeeded", res.succeeded)
	r.count("failed", res.failed)
}

// finish closes the run even when ctx was cancelled mid-run.
func (r *recorder) finish(ctx context.Context, run *types.Run) {
	run.FinishedAt = time.Now().UTC()

	r.count("skipped", run.Skipped)

	if err := r.journal.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		r.logger.Errorf("Failed to journal end of run %s: %v", run.ID, err)
	}
}

func (r *recorder) count(outcome string, n int) {
	if n == 0 {
		return
	}

	labels := map[string]string{"flow": string(r.flow), "outcome": outcome}
	if err := r.monitor.IncOperationsMetric(labels, float64(n)); err != nil {
		r.logger.Debugf("Failed to record operations metric: %v", err)
	}
}

func newRecorder(flow types.Flow, journal JournalInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *recorder {
	r := new(recorder)

	r.flow = flow
	r.journal = journal
	r.monitor = monitor
	r.logger = logger

	return r
}
