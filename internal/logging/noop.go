// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import "go.uber.org/zap"

var _ LoggerInterface = (*NoopLogger)(nil)

// NoopLogger discards everything, meant for tests.
type NoopLogger struct {
	*zap.SugaredLogger

	security SecurityLoggerInterface
}

func (l *NoopLogger) Security() SecurityLoggerInterface {
	return l.security
}

func NewNoopLogger() *NoopLogger {
	logger := new(NoopLogger)

	logger.SugaredLogger = zap.NewNop().Sugar()
	logger.security = newSecurityLogger(logger.SugaredLogger)

	return logger
}
