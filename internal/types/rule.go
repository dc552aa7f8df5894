// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package types

const (
	DefaultCustomNameKey  = "name"
	DefaultCustomValueKey = "values"
)

// ValueSource resolves the value an AttributeRule writes for a record.
type ValueSource interface {
	Resolve(Record) (any, bool)
}

// StaticValue always yields the same literal. A nil literal yields nothing.
// Objects and lists are copied on every call so payloads never share them.
type StaticValue struct {
	Value any
}

func (s StaticValue) Resolve(Record) (any, bool) {
	if s.Value == nil {
		return nil, false
	}
	return deepCopy(s.Value), true
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = deepCopy(e)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, e := range t {
			l[i] = deepCopy(e)
		}
		return l
	default:
		return v
	}
}

// CSVColumn yields the value of a column, including the empty string.
// A column missing from the header yields nothing.
type CSVColumn struct {
	Column string
}

func (c CSVColumn) Resolve(r Record) (any, bool) {
	v, ok := r.Value(c.Column)
	if !ok {
		return nil, false
	}
	return v, true
}

// RuleTarget places an attribute inside an extension namespace, optionally
// as a {NameKey: name, ValueKey: [value]} entry of a named container list.
type RuleTarget struct {
	Namespace string
	Container string
	NameKey   string
	ValueKey  string
}

// AttributeRule declares how one attribute is derived and where it is
// written. A nil Target writes to the root of the payload.
type AttributeRule struct {
	Name   string
	Source ValueSource
	Target *RuleTarget
}
