// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/aap-sync-service/internal/logging"
)

type contextKey int

const txContextKey contextKey = iota

// TxFromContext returns the transaction opened by TransactionMiddleware for
// this request, nil outside of one.
func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txContextKey).(*sql.Tx)
	return tx
}

// ContextWithTx is exported for tests and non-HTTP callers that manage their
// own transaction.
func ContextWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// TransactionMiddleware wraps every mutating request in a transaction,
// committing on success and rolling back on a 5xx or panic.
func TransactionMiddleware(client DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tx, err := client.Begin(r.Context())
			if err != nil {
				logger.Errorf("failed to begin transaction: %v", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				if p := recover(); p != nil {
					if err := tx.Rollback(); err != nil {
						logger.Errorf("failed to rollback transaction: %v", err)
					}
					panic(p)
				}

				if ww.Status() >= http.StatusInternalServerError {
					if err := tx.Rollback(); err != nil {
						logger.Errorf("failed to rollback transaction: %v", err)
					}
					return
				}

				if err := tx.Commit(); err != nil {
					logger.Errorf("failed to commit transaction: %v", err)
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ContextWithTx(r.Context(), tx)))
		})
	}
}
