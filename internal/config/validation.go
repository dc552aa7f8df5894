// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a configuration key that failed a rule.
type ValidationError struct {
	Key  string
	Rule string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s (%s)", e.Key, e.Rule)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required keys and value ranges. Every failing key is
// reported as a *ValidationError joined into the returned error.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		_, key, _ := strings.Cut(fe.Namespace(), ".")
		errs = append(errs, &ValidationError{Key: key, Rule: fe.Tag()})
	}

	return errors.Join(errs...)
}
