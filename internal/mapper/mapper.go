// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mapper

import (
	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/types"
)

const (
	SchemaCoreUser         = "urn:ietf:params:scim:schemas:core:2.0:User"
	SchemaIBMUserExtension = "urn:ietf:params:scim:schemas:extension:ibm:2.0:User"
)

// Mapper converts CSV records into SCIM User creation payloads.
type Mapper struct {
	applicator *Applicator

	logger logging.LoggerInterface
}

// MapUser returns the payload for rec, or false when the record lacks a
// username or an email and must be skipped.
func (m *Mapper) MapUser(rec types.Record) (types.Payload, bool) {
	if rec.Username == "" {
		m.logger.Debug("Skipping row: missing preferred_username")
		return nil, false
	}

	if rec.Email == "" {
		m.logger.Warnf("Skipping user '%s': missing email", rec.Username)
		return nil, false
	}

	externalID := rec.ExternalID
	if externalID == "" {
		externalID = rec.Username
	}

	payload := types.Payload{
		"schemas":    []any{SchemaCoreUser, SchemaIBMUserExtension},
		"userName":   rec.Username,
		"externalId": externalID,
		"emails": []any{
			map[string]any{
				"value":   rec.Email,
				"primary": true,
				"type":    "work",
			},
		},
	}

	name := make(map[string]any)
	if rec.GivenName != "" {
		name["givenName"] = rec.GivenName
	}
	if rec.FamilyName != "" {
		name["familyName"] = rec.FamilyName
	}
	if len(name) > 0 {
		payload["name"] = name
	}

	if rec.Password != "" {
		payload["password"] = rec.Password
	}

	m.applicator.Apply(payload, rec)

	if _, ok := payload[SchemaIBMUserExtension]; !ok {
		payload[SchemaIBMUserExtension] = make(map[string]any)
	}

	return payload, true
}

func NewMapper(rules []types.AttributeRule, logger logging.LoggerInterface) *Mapper {
	m := new(Mapper)

	m.applicator = NewApplicator(rules, logger)
	m.logger = logger

	return m
}
