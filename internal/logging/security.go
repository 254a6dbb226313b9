// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import "go.uber.org/zap"

type securityLogger struct {
	logger *zap.SugaredLogger
}

func (s *securityLogger) SystemStartup() {
	s.logger.Infow("system startup", "event", "sys_startup")
}

func (s *securityLogger) SystemShutdown() {
	s.logger.Infow("system shutdown", "event", "sys_shutdown")
}

func newSecurityLogger(logger *zap.SugaredLogger) *securityLogger {
	s := new(securityLogger)

	s.logger = logger

	return s
}
