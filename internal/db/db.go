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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
	"github.com/canonical/aap-sync-service/internal/tracing"
)

var _ DBClientInterface = (*DBClient)(nil)

type Config struct {
	DSN             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

type DBClient struct {
	db *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Statement returns a postgres-flavored squirrel builder bound to the
// transaction stashed in ctx by TransactionMiddleware, or to the pool when
// no transaction is running.
func (c *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	if tx := TxFromContext(ctx); tx != nil {
		return builder.RunWith(tx)
	}

	return builder.RunWith(c.db)
}

// Begin starts a transaction on the underlying pool.
func (c *DBClient) Begin(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}

func (c *DBClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *DBClient) Close() error {
	return c.db.Close()
}

// RawDB exposes the pool for the migration runner.
func (c *DBClient) RawDB() *sql.DB {
	return c.db
}

func NewDBClient(
	config Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*DBClient, error) {
	c := new(DBClient)

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	connConfig, err := pgx.ParseConfig(config.DSN)
	if err != nil {
		logger.Fatalf("invalid DSN: %v", err)
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if config.TracingEnabled {
		connConfig.Tracer = otelpgx.NewTracer()
	}

	c.db = sql.OpenDB(stdlib.GetConnector(*connConfig))

	if config.MaxConns > 0 {
		c.db.SetMaxOpenConns(config.MaxConns)
	}
	if config.MinConns > 0 {
		c.db.SetMaxIdleConns(config.MinConns)
	}
	if config.MaxConnLifetime > 0 {
		c.db.SetConnMaxLifetime(config.MaxConnLifetime)
	}
	if config.MaxConnIdleTime > 0 {
		c.db.SetConnMaxIdleTime(config.MaxConnIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		logger.Errorf("failed to reach database: %v", err)
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return c, nil
}
