// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/canonical/scim-bulk/internal/types"
)

func TestParseRules(t *testing.T) {
	specs := []RuleSpec{
		{Name: "active", Value: true},
		{Name: "", Value: "orphan"},
		{Name: "title", Type: RuleTypeFromCSV, CSVColumn: "job_title"},
		{Name: "broken", Type: RuleTypeFromCSV},
		{Name: "weird", Type: "computed"},
		{
			Name:            "registrationStatus",
			Type:            RuleTypeStatic,
			Value:           "completed",
			ExtensionURN:    "urn:ietf:params:scim:schemas:extension:ibm:2.0:User",
			CustomContainer: "customAttributes",
		},
	}

	rules, errs := ParseRules(specs)

	expected := []types.AttributeRule{
		{Name: "active", Source: types.StaticValue{Value: true}},
		{Name: "title", Source: types.CSVColumn{Column: "job_title"}},
		{
			Name:   "registrationStatus",
			Source: types.StaticValue{Value: "completed"},
			Target: &types.RuleTarget{
				Namespace: "urn:ietf:params:scim:schemas:extension:ibm:2.0:User",
				Container: "customAttributes",
				NameKey:   types.DefaultCustomNameKey,
				ValueKey:  types.DefaultCustomValueKey,
			},
		},
	}

	if !reflect.DeepEqual(rules, expected) {
		t.Fatalf("expected %+v, got %+v", expected, rules)
	}

	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("expected ErrInvalidRule, got %v", err)
		}
	}
}

func TestParseRulesEmpty(t *testing.T) {
	rules, errs := ParseRules(nil)
	if len(rules) != 0 || len(errs) != 0 {
		t.Fatalf("expected nothing, got %v %v", rules, errs)
	}
}
