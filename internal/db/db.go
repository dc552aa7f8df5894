// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/tracing"
	"github.com/canonical/scim-bulk/migrations"
)

const defaultPageSize uint64 = 100

var _ DBClientInterface = (*DBClient)(nil)

type Config struct {
	DSN      string
	MinConns int32
	MaxConns int32
}

// DBClient wraps a pgx pool behind a database/sql handle so statements can
// be built with squirrel.
type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(c.db)
}

// Migrate applies every pending embedded migration.
func (c *DBClient) Migrate(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "db.DBClient.Migrate")
	defer span.End()

	goose.SetBaseFS(migrations.EmbedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, c.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func (c *DBClient) Close() {
	if c.db != nil {
		c.db.Close()
	}
	if c.pool != nil {
		c.pool.Close()
	}
}

// Offset converts a 1-based page number into a row offset.
func Offset(page int64, size uint64) uint64 {
	if page < 1 {
		page = 1
	}
	return uint64(page-1) * size
}

func PageSize(size int64) uint64 {
	if size <= 0 {
		return defaultPageSize
	}
	return uint64(size)
}

func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	c := new(DBClient)

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Fatalf("DSN validation failed, shutting down, err: %v", err)
		return nil, err
	}

	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	c.pool = pool
	c.db = stdlib.OpenDBFromPool(pool)

	available := 1.0
	if err := pool.Ping(ctx); err != nil {
		logger.Errorf("Database is not reachable: %v", err)
		available = 0
	}
	if err := monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); err != nil {
		logger.Debugf("Failed to record dependency availability: %v", err)
	}

	return c, nil
}
