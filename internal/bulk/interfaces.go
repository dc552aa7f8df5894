// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package bulk

import (
	"context"

	"github.com/canonical/scim-bulk/internal/scim"
	"github.com/canonical/scim-bulk/internal/types"
)

type ClientInterface interface {
	SubmitOperations(context.Context, []scim.Operation) (*scim.BulkResponse, error)
	SubmitRequest(context.Context, *scim.BulkRequest) (*scim.BulkResponse, error)
	FindUserID(context.Context, scim.UserQuery) (string, error)
}

type SourceInterface interface {
	Path() string
	Records(context.Context) ([]types.Record, error)
}

type MapperInterface interface {
	MapUser(types.Record) (types.Payload, bool)
}

// JournalInterface records runs and their per-operation outcomes.
type JournalInterface interface {
	StartRun(context.Context, *types.Run) error
	RecordOutcomes(context.Context, string, []types.OperationOutcome) error
	FinishRun(context.Context, *types.Run) error
}
