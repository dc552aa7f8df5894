// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"

	"github.com/canonical/scim-bulk/internal/logging"
)

func TestNewTracerDisabled(t *testing.T) {
	tracer := NewTracer(NewConfig(false, "", "", logging.NewNoopLogger()))

	ctx, span := tracer.Start(context.Background(), "tracing.Test")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected a context")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected a non recording span when tracing is disabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewTracerStdout(t *testing.T) {
	tracer := NewTracer(NewConfig(true, "", "", logging.NewNoopLogger()))

	_, span := tracer.Start(context.Background(), "tracing.Test")
	if !span.SpanContext().IsValid() {
		t.Fatal("expected a valid span context when tracing is enabled")
	}
	span.End()

	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
