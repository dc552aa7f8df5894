// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/scim"
	"github.com/canonical/scim-bulk/internal/tracing"
	"github.com/canonical/scim-bulk/internal/types"
)

// DeleteSummary aggregates the outcome of a delete run. In dry-run mode
// Succeeded and Failed stay at zero.
type DeleteSummary struct {
	RunID     string
	DryRun    bool
	Rows      int
	Resolved  int
	Skipped   int
	Batches   int
	Succeeded int
	Failed    int
}

// Deleter removes the users listed in a CSV file through the SCIM Bulk
// endpoint, resolving each row to a user id first.
type Deleter struct {
	batchSize int
	dryRun    bool

	source SourceInterface
	client ClientInterface

	recorder *recorder

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (d *Deleter) Run(ctx context.Context) (*DeleteSummary, error) {
	ctx, span := d.tracer.Start(ctx, "bulk.Deleter.Run")
	defer span.End()

	if d.batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	d.logger.Infof("Starting bulk deletion from CSV: %s", d.source.Path())
	if d.dryRun {
		d.logger.Warn("DRY-RUN MODE ENABLED, no actual deletions will occur")
	}

	records, err := d.source.Records(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DeleteSummary{DryRun: d.dryRun, Rows: len(records)}

	ids, skipped, err := d.resolve(ctx, records)
	if err != nil {
		return nil, err
	}
	summary.Resolved = len(ids)
	summary.Skipped = skipped

	run := d.recorder.start(ctx, d.source.Path(), d.dryRun)
	summary.RunID = run.ID
	run.Skipped = skipped
	defer d.recorder.finish(ctx, run)

	if len(ids) == 0 {
		d.logger.Info("No users found to delete.")
		return summary, nil
	}

	d.logger.Infof("Found %d users to delete", len(ids))

	for n, chunk := range chunks(ids, d.batchSize) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		batch := n + 1
		d.logger.Infof("Processing deletion batch %d (%d users)", batch, len(chunk))

		req := scim.NewBulkRequest(deleteOperations(chunk))
		summary.Batches++

		if d.dryRun {
			d.logger.Infof("[DRY-RUN] Would send deletion batch with %d operations", len(req.Operations))
			if b, err := json.MarshalIndent(req, "", "  "); err == nil {
				d.logger.Debugf("%s", b)
			}
			continue
		}

		res := d.submit(ctx, batch, req)

		summary.Succeeded += res.succeeded
		summary.Failed += res.failed
		d.recorder.batch(ctx, run, res)
	}

	d.logger.Infof(
		"Bulk deletion process completed. Total succeeded: %d / %d (%d failed)",
		summary.Succeeded, summary.Resolved, summary.Failed,
	)

	return summary, nil
}

// resolve looks up the id of every row that carries a username or an
// externalId. Rows that cannot be resolved are skipped.
func (d *Deleter) resolve(ctx context.Context, records []types.Record) ([]string, int, error) {
	ctx, span := d.tracer.Start(ctx, "bulk.Deleter.resolve")
	defer span.End()

	ids := make([]string, 0, len(records))
	skipped := 0

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		if rec.Username == "" && rec.ExternalID == "" {
			skipped++
			continue
		}

		id, err := d.client.FindUserID(ctx, scim.UserQuery{UserName: rec.Username, ExternalID: rec.ExternalID})
		switch {
		case errors.Is(err, scim.ErrUserNotFound):
			skipped++
			d.logger.Warnf("User not found: %s / %s", rec.Username, rec.ExternalID)
		case err != nil:
			skipped++
			d.logger.Errorf("User lookup failed for %s / %s: %v", rec.Username, rec.ExternalID, err)
		default:
			ids = append(ids, id)
			d.logger.Debugf("User found: %s / %s, id %s", rec.Username, rec.ExternalID, id)
		}
	}

	d.logger.Infof("Collected %d user IDs to delete (skipped %d)", len(ids), skipped)

	return ids, skipped, nil
}

func (d *Deleter) submit(ctx context.Context, batch int, req *scim.BulkRequest) batchResult {
	ctx, span := d.tracer.Start(ctx, "bulk.Deleter.submit")
	defer span.End()

	resp, err := d.client.SubmitRequest(ctx, req)
	if err != nil {
		d.logger.Errorf("Bulk deletion batch %d failed: %v", batch, err)
		return failBatch(batch, req.Operations, err)
	}

	return reconcile(batch, req.Operations, resp, d.logger)
}

func deleteOperations(ids []string) []scim.Operation {
	ops := make([]scim.Operation, 0, len(ids))
	for n, id := range ids {
		ops = append(ops, scim.Operation{
			Method: scim.MethodDelete,
			Path:   "/Users/" + id,
			BulkID: fmt.Sprintf("del-%04d", n+1),
		})
	}
	return ops
}

func NewDeleter(
	batchSize int,
	dryRun bool,
	source SourceInterface,
	client ClientInterface,
	journal JournalInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Deleter {
	d := new(Deleter)

	d.batchSize = batchSize
	d.dryRun = dryRun
	d.source = source
	d.client = client
	d.recorder = newRecorder(types.FlowDelete, journal, monitor, logger)

	d.tracer = tracer
	d.logger = logger

	return d
}
