// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package types

// Record is one CSV row. The well-known columns are decoded into typed,
// whitespace-trimmed fields; Columns keeps every header column verbatim.
type Record struct {
	Username   string `csv:"preferred_username"`
	ExternalID string `csv:"externalId"`
	Email      string `csv:"email"`
	GivenName  string `csv:"given_name"`
	FamilyName string `csv:"family_name"`
	Password   string `csv:"password"`

	Columns map[string]string `csv:"-"`
}

// Value returns the raw value of a column and whether the column exists.
func (r Record) Value(column string) (string, bool) {
	v, ok := r.Columns[column]
	return v, ok
}

// Payload is a SCIM resource as sent on the wire.
type Payload map[string]any
