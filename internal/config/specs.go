// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

// EnvSpec holds the environment overrides applied on top of the
// configuration document
type EnvSpec struct {
	ConfigPath string `envconfig:"scim_bulk_config" default:"conf/application.yaml"`

	ClientID     string `envconfig:"scim_client_id"`
	ClientSecret string `envconfig:"scim_client_secret"`

	LogLevel string `envconfig:"log_level"`

	TracingEnabled   *bool  `envconfig:"tracing_enabled"`
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`

	PushgatewayURL string `envconfig:"pushgateway_url"`

	AuditDSN string `envconfig:"audit_dsn"`
}
