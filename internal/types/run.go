// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package types

import "time"

type Flow string

const (
	FlowImport Flow = "import"
	FlowDelete Flow = "delete"
)

// Run is the journal entry of one execution of a bulk flow.
type Run struct {
	ID         string    `json:"id"`
	Flow       Flow      `json:"flow"`
	Source     string    `json:"source"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

// OperationOutcome is the reconciled result of a single bulk operation.
type OperationOutcome struct {
	Batch     int    `json:"batch"`
	BulkID    string `json:"bulk_id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail"`
	ScimType  string `json:"scim_type"`
}
