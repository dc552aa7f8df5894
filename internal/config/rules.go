// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"fmt"

	"github.com/canonical/scim-bulk/internal/types"
)

const (
	RuleTypeStatic  = "static"
	RuleTypeFromCSV = "from_csv"
)

var ErrInvalidRule = errors.New("invalid attribute rule")

// RuleSpec is an attribute rule as written in the configuration document.
type RuleSpec struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	Value           any    `yaml:"value"`
	CSVColumn       string `yaml:"csv_column"`
	ExtensionURN    string `yaml:"extension_urn"`
	CustomContainer string `yaml:"custom_container"`
	CustomNameKey   string `yaml:"custom_name_key"`
	CustomValueKey  string `yaml:"custom_value_key"`
}

func (r RuleSpec) source() (types.ValueSource, error) {
	switch r.Type {
	case "", RuleTypeStatic:
		return types.StaticValue{Value: r.Value}, nil
	case RuleTypeFromCSV:
		if r.CSVColumn == "" {
			return nil, fmt.Errorf("%w: %s has type %s but no csv_column", ErrInvalidRule, r.Name, RuleTypeFromCSV)
		}
		return types.CSVColumn{Column: r.CSVColumn}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q for %s", ErrInvalidRule, r.Type, r.Name)
	}
}

func (r RuleSpec) target() *types.RuleTarget {
	if r.ExtensionURN == "" {
		return nil
	}

	t := new(types.RuleTarget)
	t.Namespace = r.ExtensionURN
	t.Container = r.CustomContainer
	t.NameKey = r.CustomNameKey
	t.ValueKey = r.CustomValueKey
	if t.NameKey == "" {
		t.NameKey = types.DefaultCustomNameKey
	}
	if t.ValueKey == "" {
		t.ValueKey = types.DefaultCustomValueKey
	}
	return t
}

// ParseRules converts rule specs into attribute rules, keeping declaration
// order. Invalid specs are left out and reported, one error each.
func ParseRules(specs []RuleSpec) ([]types.AttributeRule, []error) {
	rules := make([]types.AttributeRule, 0, len(specs))
	var errs []error

	for i, spec := range specs {
		if spec.Name == "" {
			errs = append(errs, fmt.Errorf("%w: rule %d is missing a name", ErrInvalidRule, i+1))
			continue
		}

		source, err := spec.source()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		rules = append(rules, types.AttributeRule{
			Name:   spec.Name,
			Source: source,
			Target: spec.target(),
		})
	}

	return rules, errs
}
