package messaging

import (
	"context"

	"github.com/KirkDiggler/reservas/internal/common/logger"
	"go.uber.org/zap"
)

// LogSender writes replies to the log instead of delivering them.
// It stands in for a channel whose credentials are not configured.
type LogSender struct {
	channel Channel
	logger  *zap.Logger
}

// NewLogSender creates a Sender that only logs
func NewLogSender(channel Channel, l *zap.Logger) *LogSender {
	return &LogSender{channel: channel, logger: logger.OrNop(l)}
}

// Send logs the reply and never fails
func (s *LogSender) Send(ctx context.Context, recipient, text string) error {
	s.logger.Info("reply not delivered, channel has no credentials",
		zap.String("channel", string(s.channel)),
		zap.String("recipient", recipient),
		zap.String("text", text),
	)
	return nil
}
