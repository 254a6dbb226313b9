// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	Statement(ctx context.Context) sq.StatementBuilderType
	Begin(ctx context.Context) (*sql.Tx, error)
	Ping(ctx context.Context) error
	RawDB() *sql.DB
	Close() error
}
