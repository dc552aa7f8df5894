// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

// Logger is a zap sugared logger enriched with a security event logger.
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
	closers  []func() error
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// Sync flushes buffered entries and closes the log file, if any.
func (l *Logger) Sync() error {
	err := l.SugaredLogger.Sync()
	for _, c := range l.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func level(l string) zapcore.Level {
	switch strings.ToLower(l) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func encoder(c *Config) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(c.TimeFormat)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if c.Encoding == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func openFile(c *Config) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if c.FileMode == "w" {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	return os.OpenFile(c.FilePath, flags, 0o644)
}

// NewLogger builds the process-wide logger. It always writes to stderr and,
// when configured, also to a file.
func NewLogger(c *Config) (*Logger, error) {
	if c == nil {
		c = NewConfig("info", "console", "", false, "", "")
	}

	lvl := zap.NewAtomicLevelAt(level(c.Level))
	enc := encoder(c)

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl),
	}

	l := new(Logger)

	if c.ToFile {
		f, err := openFile(c)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", c.FilePath, err)
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), lvl))
		l.closers = append(l.closers, f.Close)
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	l.SugaredLogger = z.Sugar()
	l.security = newSecurityLogger(z)

	fileOutput := "no"
	if c.ToFile {
		fileOutput = c.FilePath
	}
	l.Debugf("Logging initialized: level=%s, console=yes, file=%s", lvl.String(), fileOutput)

	return l, nil
}

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() *Logger {
	z := zap.NewNop()

	l := new(Logger)
	l.SugaredLogger = z.Sugar()
	l.security = newSecurityLogger(z)

	return l
}
