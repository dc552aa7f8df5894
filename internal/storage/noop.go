// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/scim-bulk/internal/types"
)

// NoopJournal is used when no audit database is configured.
type NoopJournal struct{}

func (NoopJournal) StartRun(context.Context, *types.Run) error { return nil }

func (NoopJournal) RecordOutcomes(context.Context, string, []types.OperationOutcome) error {
	return nil
}

func (NoopJournal) FinishRun(context.Context, *types.Run) error { return nil }

func NewNoopJournal() *NoopJournal {
	return new(NoopJournal)
}
