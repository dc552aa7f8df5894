// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package bulk

import (
	"context"
	"fmt"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/scim"
	"github.com/canonical/scim-bulk/internal/tracing"
	"github.com/canonical/scim-bulk/internal/types"
)

// ImportSummary aggregates the outcome of an import run.
type ImportSummary struct {
	RunID     string
	Rows      int
	Prepared  int
	Skipped   int
	Batches   int
	Succeeded int
	Failed    int
}

// Importer creates users from CSV rows through the SCIM Bulk endpoint.
type Importer struct {
	batchSize int

	source SourceInterface
	mapper MapperInterface
	client ClientInterface

	recorder *recorder

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// Run reads and maps every row, then submits the valid payloads in
// consecutive batches. Batch failures are counted, not returned; only a
// source error or cancellation aborts the run.
func (i *Importer) Run(ctx context.Context) (*ImportSummary, error) {
	ctx, span := i.tracer.Start(ctx, "bulk.Importer.Run")
	defer span.End()

	if i.batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	i.logger.Infof("Starting bulk import from %s", i.source.Path())

	records, err := i.source.Records(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Rows: len(records)}

	payloads := make([]types.Payload, 0, len(records))
	for _, rec := range records {
		payload, ok := i.mapper.MapUser(rec)
		if !ok {
			i.logger.Debug("Skipped invalid/empty row")
			summary.Skipped++
			continue
		}
		payloads = append(payloads, payload)
	}
	summary.Prepared = len(payloads)

	run := i.recorder.start(ctx, i.source.Path(), false)
	summary.RunID = run.ID
	run.Skipped = summary.Skipped
	defer i.recorder.finish(ctx, run)

	if len(payloads) == 0 {
		i.logger.Warn("No valid users found in CSV. Nothing to import.")
		return summary, nil
	}

	i.logger.Infof("Prepared %d valid users for import", len(payloads))

	offset := 0
	for n, chunk := range chunks(payloads, i.batchSize) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		batch := n + 1
		i.logger.Infof("Processing batch %d (%d users, %d-%d)", batch, len(chunk), offset+1, offset+len(chunk))
		offset += len(chunk)

		res := i.submit(ctx, batch, createOperations(chunk))

		summary.Batches++
		summary.Succeeded += res.succeeded
		summary.Failed += res.failed
		i.recorder.batch(ctx, run, res)
	}

	i.logger.Infof(
		"Bulk import finished. Total succeeded: %d / %d (%d failed)",
		summary.Succeeded, summary.Prepared, summary.Failed,
	)

	return summary, nil
}

func (i *Importer) submit(ctx context.Context, batch int, ops []scim.Operation) batchResult {
	ctx, span := i.tracer.Start(ctx, "bulk.Importer.submit")
	defer span.End()

	resp, err := i.client.SubmitOperations(ctx, ops)
	if err != nil {
		i.logger.Errorf("Batch %d failed completely: %v", batch, err)
		return failBatch(batch, ops, err)
	}

	return reconcile(batch, ops, resp, i.logger)
}

func createOperations(payloads []types.Payload) []scim.Operation {
	ops := make([]scim.Operation, 0, len(payloads))
	for n, p := range payloads {
		ops = append(ops, scim.Operation{
			Method: scim.MethodPost,
			Path:   "/Users",
			BulkID: fmt.Sprintf("create-user-%04d", n+1),
			Data:   p,
		})
	}
	return ops
}

func NewImporter(
	batchSize int,
	source SourceInterface,
	mapper MapperInterface,
	client ClientInterface,
	journal JournalInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Importer {
	i := new(Importer)

	i.batchSize = batchSize
	i.source = source
	i.mapper = mapper
	i.client = client
	i.recorder = newRecorder(types.FlowImport, journal, monitor, logger)

	i.tracer = tracer
	i.logger = logger

	return i
}
