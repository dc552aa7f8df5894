// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validDocument = `
tenant:
  base_url: https://tenant.example.com/
  scim_path: /v2.0
auth:
  token_path: /v1.0/endpoint/default/token
  client_id: app
  client_secret: secret
import:
  csv_file: users.csv
  batch_size: 50
  attribute_rules:
    - name: active
      value: true
http:
  bulk_timeout: 90s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "application.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, validDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	if c.SCIMBaseURL() != "https://tenant.example.com/v2.0" {
		t.Fatalf("unexpected scim base url %q", c.SCIMBaseURL())
	}
	if c.TokenURL() != "https://tenant.example.com/v1.0/endpoint/default/token" {
		t.Fatalf("unexpected token url %q", c.TokenURL())
	}
	if c.HTTP.BulkTimeout != 90*time.Second {
		t.Fatalf("expected bulk timeout 90s, got %v", c.HTTP.BulkTimeout)
	}
	if c.HTTP.LookupTimeout != DefaultLookupTimeout || c.HTTP.TokenTimeout != DefaultTokenTimeout {
		t.Fatalf("expected default timeouts, got %+v", c.HTTP)
	}
	if !c.DeleteDryRun() {
		t.Fatal("expected delete dry run to default to true")
	}
	if !c.AuditAutoMigrate() {
		t.Fatal("expected auto migrate to default to true")
	}
	if c.Logging.Level != "info" || c.Logging.FileMode != "a" {
		t.Fatalf("unexpected logging defaults %+v", c.Logging)
	}
	if len(c.Import.AttributeRules) != 1 || c.Import.AttributeRules[0].Value != true {
		t.Fatalf("unexpected attribute rules %+v", c.Import.AttributeRules)
	}
}

func TestLoadDryRunDisabled(t *testing.T) {
	c, err := Load(writeConfig(t, validDocument+"delete:\n  dry_run: false\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DeleteDryRun() {
		t.Fatal("expected dry run to be disabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCIM_CLIENT_ID", "env-app")
	t.Setenv("SCIM_CLIENT_SECRET", "env-secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("AUDIT_DSN", "postgres://localhost/audit")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")

	c, err := Load(writeConfig(t, validDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Auth.ClientID != "env-app" || c.Auth.ClientSecret != "env-secret" {
		t.Fatalf("expected credentials from env, got %+v", c.Auth)
	}
	if c.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", c.Logging.Level)
	}
	if !c.Tracing.Enabled {
		t.Fatal("expected tracing enabled")
	}
	if c.Audit.DSN != "postgres://localhost/audit" {
		t.Fatalf("unexpected audit dsn %q", c.Audit.DSN)
	}
	if c.Metrics.PushgatewayURL != "http://pushgateway:9091" {
		t.Fatalf("unexpected pushgateway url %q", c.Metrics.PushgatewayURL)
	}
}

func TestLoadPathFromEnv(t *testing.T) {
	t.Setenv("SCIM_BULK_CONFIG", writeConfig(t, validDocument))

	c, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Auth.ClientID != "app" {
		t.Fatalf("unexpected client id %q", c.Auth.ClientID)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(*testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name: "invalid yaml",
			path: func(t *testing.T) string { return writeConfig(t, "tenant: [unterminated") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path(t)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{
			Tenant: TenantConfig{BaseURL: "https://tenant.example.com", SCIMPath: "/v2.0"},
			Auth:   AuthConfig{TokenPath: "/token", ClientID: "app", ClientSecret: "secret"},
			Import: ImportConfig{CSVFile: "users.csv", BatchSize: 10},
		}
		c.setDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		keys   []string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:   "missing tenant",
			mutate: func(c *Config) { c.Tenant = TenantConfig{} },
			keys:   []string{"tenant.base_url", "tenant.scim_path"},
		},
		{
			name:   "missing credentials",
			mutate: func(c *Config) { c.Auth.ClientID, c.Auth.ClientSecret = "", "" },
			keys:   []string{"auth.client_id", "auth.client_secret"},
		},
		{
			name:   "token path required without discovery",
			mutate: func(c *Config) { c.Auth.TokenPath = "" },
			keys:   []string{"auth.token_path"},
		},
		{
			name:   "token path optional with discovery",
			mutate: func(c *Config) { c.Auth.TokenPath, c.Auth.Discovery = "", true },
		},
		{
			name:   "zero batch size",
			mutate: func(c *Config) { c.Import.BatchSize = 0 },
			keys:   []string{"import.batch_size"},
		},
		{
			name:   "missing csv file",
			mutate: func(c *Config) { c.Import.CSVFile = "" },
			keys:   []string{"import.csv_file"},
		},
		{
			name:   "invalid file mode",
			mutate: func(c *Config) { c.Logging.FileMode = "x" },
			keys:   []string{"logging.file_mode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if len(tt.keys) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}

			joined, ok := err.(interface{ Unwrap() []error })
			if !ok {
				t.Fatalf("expected joined errors, got %T", err)
			}

			got := make(map[string]bool)
			for _, e := range joined.Unwrap() {
				var verr *ValidationError
				if !errors.As(e, &verr) {
					t.Fatalf("expected ValidationError, got %T", e)
				}
				got[verr.Key] = true
			}

			for _, key := range tt.keys {
				if !got[key] {
					t.Fatalf("expected %s to be reported, got %v", key, got)
				}
			}
			if len(got) != len(tt.keys) {
				t.Fatalf("expected %d keys, got %v", len(tt.keys), got)
			}
		})
	}
}
