// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/scim-bulk/internal/bulk"
	"github.com/canonical/scim-bulk/internal/config"
	"github.com/canonical/scim-bulk/internal/credentials"
	"github.com/canonical/scim-bulk/internal/db"
	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring/prometheus"
	"github.com/canonical/scim-bulk/internal/scim"
	"github.com/canonical/scim-bulk/internal/source"
	"github.com/canonical/scim-bulk/internal/storage"
	"github.com/canonical/scim-bulk/internal/tracing"
)

const serviceName = "scim-bulk"

// loadConfig reads the configuration document and applies the command line
// overrides shared by the import and delete commands before validating it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("csv"); f != nil && f.Changed {
		cfg.Import.CSVFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("batch-size"); f != nil && f.Changed {
		n, err := cmd.Flags().GetInt("batch-size")
		if err != nil {
			return nil, err
		}
		cfg.Import.BatchSize = n
	}
	if f := cmd.Flags().Lookup("dry-run"); f != nil && f.Changed {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return nil, err
		}
		cfg.Delete.DryRun = &dryRun
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runtime holds the ambient services shared by every command.
type runtime struct {
	cfg *config.Config

	logger  *logging.Logger
	tracer  *tracing.Tracer
	monitor *prometheus.Monitor

	dbClient *db.DBClient
	journal  bulk.JournalInterface

	httpClient *http.Client
}

func newRuntime(cfg *config.Config) (*runtime, error) {
	r := new(runtime)
	r.cfg = cfg

	logger, err := logging.NewLogger(
		logging.NewConfig(
			cfg.Logging.Level,
			cfg.Logging.Encoding,
			cfg.Logging.TimeFormat,
			cfg.Logging.ToFile,
			cfg.Logging.FilePath,
			cfg.Logging.FileMode,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	r.logger = logger
	r.logger.Debugf("Loaded configuration from %s", cfg.Path())

	r.tracer = tracing.NewTracer(
		tracing.NewConfig(cfg.Tracing.Enabled, cfg.Tracing.OtelGRPCEndpoint, cfg.Tracing.OtelHTTPEndpoint, logger),
	)
	r.monitor = prometheus.NewMonitor(serviceName, logger)
	r.httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return r, nil
}

// openJournal connects the activity journal when an audit database is
// configured and falls back to a noop journal otherwise.
func (r *runtime) openJournal(ctx context.Context) error {
	if r.cfg.Audit.DSN == "" {
		r.logger.Debug("No audit database configured, run journal disabled")
		r.journal = storage.NewNoopJournal()
		return nil
	}

	s, err := r.openStorage(ctx)
	if err != nil {
		return err
	}
	r.journal = s

	return nil
}

func (r *runtime) openStorage(ctx context.Context) (*storage.Storage, error) {
	if r.cfg.Audit.DSN == "" {
		return nil, fmt.Errorf("audit.dsn is not configured")
	}

	dbClient, err := db.NewDBClient(db.Config{DSN: r.cfg.Audit.DSN}, r.tracer, r.monitor, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}
	r.dbClient = dbClient

	if r.cfg.AuditAutoMigrate() {
		if err := dbClient.Migrate(ctx); err != nil {
			return nil, err
		}
		r.logger.Debug("Audit database migrations applied")
	}

	return storage.NewStorage(dbClient, r.tracer, r.monitor, r.logger), nil
}

// scimClient obtains an access token and returns a client bound to it.
func (r *runtime) scimClient(ctx context.Context) (*scim.Client, error) {
	provider := credentials.NewProvider(
		credentials.NewConfig(
			r.cfg.TokenURL(),
			r.cfg.IssuerURL(),
			r.cfg.Auth.Discovery,
			r.cfg.Auth.ClientID,
			r.cfg.Auth.ClientSecret,
			r.cfg.Auth.Scopes,
			r.cfg.HTTP.TokenTimeout,
		),
		r.httpClient,
		r.tracer,
		r.monitor,
		r.logger,
	)

	token, err := provider.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	return scim.NewClient(
		scim.NewConfig(r.cfg.SCIMBaseURL(), token, r.cfg.HTTP.LookupTimeout, r.cfg.HTTP.BulkTimeout),
		r.httpClient,
		r.tracer,
		r.monitor,
		r.logger,
	), nil
}

func (r *runtime) csvSource() *source.CSV {
	return source.NewCSV(r.cfg.Import.CSVFile, r.logger)
}

// close pushes the collected metrics and releases every resource.
func (r *runtime) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if url := r.cfg.Metrics.PushgatewayURL; url != "" {
		if err := r.monitor.Push(ctx, url, r.cfg.Metrics.Job); err != nil {
			r.logger.Errorf("Failed to push metrics: %v", err)
		}
	}

	if r.dbClient != nil {
		r.dbClient.Close()
	}

	if err := r.tracer.Shutdown(ctx); err != nil {
		r.logger.Errorf("Failed to shut down tracer: %v", err)
	}

	_ = r.logger.Sync()
}
