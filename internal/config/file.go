// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLookupTimeout = 20 * time.Second
	DefaultBulkTimeout   = 180 * time.Second
	DefaultTokenTimeout  = 30 * time.Second

	DefaultMetricsJob = "scim-bulk"
)

type TenantConfig struct {
	BaseURL  string `yaml:"base_url" validate:"required,url"`
	SCIMPath string `yaml:"scim_path" validate:"required"`
}

type AuthConfig struct {
	TokenPath    string   `yaml:"token_path" validate:"required_without=Discovery"`
	ClientID     string   `yaml:"client_id" validate:"required"`
	ClientSecret string   `yaml:"client_secret" validate:"required"`
	Discovery    bool     `yaml:"discovery"`
	IssuerPath   string   `yaml:"issuer_path"`
	Scopes       []string `yaml:"scopes"`
}

type ImportConfig struct {
	CSVFile        string     `yaml:"csv_file" validate:"required"`
	BatchSize      int        `yaml:"batch_size" validate:"gt=0"`
	AttributeRules []RuleSpec `yaml:"attribute_rules"`
}

type DeleteConfig struct {
	DryRun *bool `yaml:"dry_run"`
}

type HTTPConfig struct {
	LookupTimeout time.Duration `yaml:"lookup_timeout" validate:"gte=0"`
	BulkTimeout   time.Duration `yaml:"bulk_timeout" validate:"gte=0"`
	TokenTimeout  time.Duration `yaml:"token_timeout" validate:"gte=0"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Encoding   string `yaml:"encoding" validate:"omitempty,oneof=console json"`
	TimeFormat string `yaml:"time_format"`
	ToFile     bool   `yaml:"to_file"`
	FilePath   string `yaml:"file_path"`
	FileMode   string `yaml:"file_mode" validate:"omitempty,oneof=a w"`
}

type TracingConfig struct {
	Enabled          bool   `yaml:"enabled"`
	OtelGRPCEndpoint string `yaml:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `yaml:"otel_http_endpoint"`
}

type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" validate:"omitempty,url"`
	Job            string `yaml:"job"`
}

type AuditConfig struct {
	DSN         string `yaml:"dsn"`
	AutoMigrate *bool  `yaml:"auto_migrate"`
}

// Config is the application configuration document.
type Config struct {
	Tenant  TenantConfig  `yaml:"tenant"`
	Auth    AuthConfig    `yaml:"auth"`
	Import  ImportConfig  `yaml:"import"`
	Delete  DeleteConfig  `yaml:"delete"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
	Audit   AuditConfig   `yaml:"audit"`

	path string
}

// Path returns the file the configuration was read from.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) TenantURL() string {
	return strings.TrimRight(c.Tenant.BaseURL, "/")
}

func (c *Config) SCIMBaseURL() string {
	return c.TenantURL() + c.Tenant.SCIMPath
}

func (c *Config) TokenURL() string {
	return c.TenantURL() + c.Auth.TokenPath
}

// IssuerURL is the OpenID issuer used when the token endpoint is
// discovered rather than configured.
func (c *Config) IssuerURL() string {
	return c.TenantURL() + c.Auth.IssuerPath
}

// DeleteDryRun defaults to true when the document does not set it.
func (c *Config) DeleteDryRun() bool {
	return c.Delete.DryRun == nil || *c.Delete.DryRun
}

func (c *Config) AuditAutoMigrate() bool {
	return c.Audit.AutoMigrate == nil || *c.Audit.AutoMigrate
}

func (c *Config) setDefaults() {
	if c.HTTP.LookupTimeout == 0 {
		c.HTTP.LookupTimeout = DefaultLookupTimeout
	}
	if c.HTTP.BulkTimeout == 0 {
		c.HTTP.BulkTimeout = DefaultBulkTimeout
	}
	if c.HTTP.TokenTimeout == 0 {
		c.HTTP.TokenTimeout = DefaultTokenTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Encoding == "" {
		c.Logging.Encoding = "console"
	}
	if c.Logging.FileMode == "" {
		c.Logging.FileMode = "a"
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = DefaultMetricsJob
	}
}

func (c *Config) applyEnv(specs *EnvSpec) {
	if specs.ClientID != "" {
		c.Auth.ClientID = specs.ClientID
	}
	if specs.ClientSecret != "" {
		c.Auth.ClientSecret = specs.ClientSecret
	}
	if specs.LogLevel != "" {
		c.Logging.Level = specs.LogLevel
	}
	if specs.TracingEnabled != nil {
		c.Tracing.Enabled = *specs.TracingEnabled
	}
	if specs.OtelGRPCEndpoint != "" {
		c.Tracing.OtelGRPCEndpoint = specs.OtelGRPCEndpoint
	}
	if specs.OtelHTTPEndpoint != "" {
		c.Tracing.OtelHTTPEndpoint = specs.OtelHTTPEndpoint
	}
	if specs.PushgatewayURL != "" {
		c.Metrics.PushgatewayURL = specs.PushgatewayURL
	}
	if specs.AuditDSN != "" {
		c.Audit.DSN = specs.AuditDSN
	}
}

// Load reads the configuration document at path and applies environment
// overrides and defaults. An empty path falls back to SCIM_BULK_CONFIG.
// The result is not validated, callers apply their own overrides first.
func Load(path string) (*Config, error) {
	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if path == "" {
		path = specs.ConfigPath
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	c.path = cleanPath
	c.applyEnv(specs)
	c.setDefaults()

	return c, nil
}
