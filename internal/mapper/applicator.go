// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mapper

import (
	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/types"
)

// Applicator writes the configured attribute rules into a payload.
type Applicator struct {
	rules []types.AttributeRule

	logger logging.LoggerInterface
}

// Apply mutates payload in place, one rule at a time in declaration order.
func (a *Applicator) Apply(payload types.Payload, rec types.Record) {
	for _, rule := range a.rules {
		value, ok := rule.Source.Resolve(rec)
		if !ok {
			continue
		}

		if rule.Target == nil || rule.Target.Namespace == "" {
			payload[rule.Name] = value
			a.logger.Debugf("Applied core attribute: %s = %v", rule.Name, value)
			continue
		}

		a.applyExtension(payload, rule.Name, value, rule.Target)
	}
}

func (a *Applicator) applyExtension(payload types.Payload, name string, value any, target *types.RuleTarget) {
	ext, ok := payload[target.Namespace].(map[string]any)
	if !ok {
		if _, exists := payload[target.Namespace]; exists {
			a.logger.Warnf("Attribute %s holds a non-object value, replacing it", target.Namespace)
		}
		ext = make(map[string]any)
		payload[target.Namespace] = ext
	}

	if target.Container == "" {
		ext[name] = value
		a.logger.Debugf("Applied extension attribute: %s:%s = %v", target.Namespace, name, value)
		return
	}

	nameKey := target.NameKey
	if nameKey == "" {
		nameKey = types.DefaultCustomNameKey
	}
	valueKey := target.ValueKey
	if valueKey == "" {
		valueKey = types.DefaultCustomValueKey
	}

	entries, ok := ext[target.Container].([]any)
	if !ok {
		if _, exists := ext[target.Container]; exists {
			a.logger.Warnf("Container %s:%s holds a non-list value, replacing it", target.Namespace, target.Container)
		}
		entries = make([]any, 0, 1)
	}

	found := false
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok || entry[nameKey] != name {
			continue
		}
		entry[valueKey] = asList(value)
		found = true
		break
	}

	if !found {
		entries = append(entries, map[string]any{
			nameKey:  name,
			valueKey: asList(value),
		})
	}
	ext[target.Container] = entries

	a.logger.Debugf("Applied extension attribute: %s:%s:%s = %v", target.Namespace, target.Container, name, value)
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{v}
}

func NewApplicator(rules []types.AttributeRule, logger logging.LoggerInterface) *Applicator {
	a := new(Applicator)

	a.rules = rules
	a.logger = logger

	return a
}
