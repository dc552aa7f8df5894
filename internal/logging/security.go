// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

const appID = "scim-bulk"

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(level, event, description string) {
	fields := []zap.Field{
		zap.String("type", "security"),
		zap.String("appid", appID),
		zap.String("event", event),
		zap.String("level", level),
	}

	switch level {
	case "WARN":
		s.l.Warn(description, fields...)
	default:
		s.l.Info(description, fields...)
	}
}

func (s *SecurityLogger) SystemStartup() {
	s.event("INFO", fmt.Sprintf("sys_startup:%s", appID), "Bulk run started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("INFO", fmt.Sprintf("sys_shutdown:%s", appID), "Bulk run stopped")
}

func (s *SecurityLogger) AuthnSuccess(clientID string) {
	s.event("INFO", fmt.Sprintf("authn_token_created:%s", clientID), "Access token issued")
}

func (s *SecurityLogger) AuthnFailure(clientID, reason string) {
	s.event("WARN", fmt.Sprintf("authn_token_failed:%s", clientID), reason)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	s := new(SecurityLogger)
	s.l = l.WithOptions(zap.AddCallerSkip(1))
	return s
}
