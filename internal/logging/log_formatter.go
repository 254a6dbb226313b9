// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

var _ middleware.LogFormatter = (*LogFormatter)(nil)

// LogFormatter plugs the service logger into chi's RequestLogger middleware.
// Entries are emitted at debug level only.
type LogFormatter struct {
	logger LoggerInterface
}

func (f *LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	e := new(logEntry)

	e.logger = f.logger
	e.request = r

	return e
}

type logEntry struct {
	logger  LoggerInterface
	request *http.Request
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.logger.Debugf(
		"%s %s://%s%s - %d %dB in %s",
		e.request.Method,
		scheme(e.request),
		e.request.Host,
		e.request.RequestURI,
		status,
		bytes,
		elapsed,
	)
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.logger.Errorf("panic serving %s %s: %v\n%s", e.request.Method, e.request.RequestURI, v, fmt.Sprintf("%s", stack))
}

func scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}

	return "http"
}

func NewLogFormatter(logger LoggerInterface) *LogFormatter {
	f := new(LogFormatter)

	f.logger = logger

	return f
}
