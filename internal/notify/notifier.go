package notify

import (
	"context"
	"errors"

	"artist-booking/internal/model"
	"artist-booking/pkg/logger"

	"go.uber.org/zap"
)

// Notifier delivers a notification to its recipient over some channel.
type Notifier interface {
	Send(ctx context.Context, n *model.Notification) error
}

// LogNotifier stands in for push/email delivery by writing a log line.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.WithComponent("notify")}
}

func (n *LogNotifier) Send(ctx context.Context, msg *model.Notification) error {
	if msg == nil {
		return errors.New("nil notification")
	}
	n.log.Info("push",
		zap.String("id", msg.ID),
		zap.String("kind", string(msg.Kind)),
		zap.Int("artist_id", msg.ArtistID),
		zap.Int("request_id", msg.RequestID),
		zap.String("message", msg.Message),
	)
	return nil
}
