// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security SecurityLoggerInterface
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

func NewLogger(level string) *Logger {
	logger := new(Logger)

	cfg := zap.NewProductionConfig()
	cfg.Level = parseLevel(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		panic(err.Error())
	}

	logger.SugaredLogger = l.Sugar()
	logger.security = newSecurityLogger(logger.SugaredLogger)

	return logger
}

func parseLevel(level string) zap.AtomicLevel {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		l = zapcore.ErrorLevel
	}

	return zap.NewAtomicLevelAt(l)
}
