// Package notification provides the fire-and-forget notification sinks used
// by the backup service.
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/propledger/backend/internal/application/backup"
)

// LogNotifier writes notifications to the application log. It is the default
// sink when no Redis channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

var _ backup.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification
func (n *LogNotifier) Notify(_ context.Context, title, message, category string, data map[string]any) error {
	n.logger.Info("notification",
		zap.String("title", title),
		zap.String("message", message),
		zap.String("category", category),
		zap.Any("data", data),
	)
	return nil
}
