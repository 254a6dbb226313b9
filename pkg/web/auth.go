// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/canonical/aap-sync-service/internal/logging"
)

// middlewareAPIToken guards every route behind a static bearer token.
// Status and metrics stay open for probes and scrapers.
func middlewareAPIToken(token string, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/v0/status" || r.URL.Path == "/api/v0/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				logger.Debugf("rejected request to %s with invalid api token", r.URL.Path)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
