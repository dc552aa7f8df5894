// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "bogus", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := level(tt.in); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	l, err := NewLogger(NewConfig("info", "json", "", true, path, "w"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Infof("batch %d summary", 1)
	l.Debugf("hidden %d", 2)
	l.Security().AuthnSuccess("client-1")

	if err := l.Sync(); err != nil && !strings.Contains(err.Error(), "sync") {
		t.Fatalf("unexpected sync error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(b)

	if !strings.Contains(content, "batch 1 summary") {
		t.Fatalf("expected info entry in log file, got %q", content)
	}
	if strings.Contains(content, "hidden 2") {
		t.Fatalf("debug entry should be filtered at info level, got %q", content)
	}
	if !strings.Contains(content, "authn_token_created:client-1") {
		t.Fatalf("expected security event in log file, got %q", content)
	}
}

func TestNewLoggerInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "run.log")

	if _, err := NewLogger(NewConfig("info", "console", "", true, path, "a")); err == nil {
		t.Fatal("expected error for unwritable log path")
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Warnf("nothing %s", "here")
	l.Security().SystemStartup()

	if err := l.Sync(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
