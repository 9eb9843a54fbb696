package worker

import (
	"context"
	"sync"

	"artist-booking/internal/notify"
	"artist-booking/internal/queue"
	"artist-booking/pkg/logger"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	Start(ctx context.Context) error
	// Wait blocks until the delivery loop has drained after ctx is cancelled.
	Wait()
}

type NotificationWorkerImpl struct {
	notifier notify.Notifier
	queue    queue.NotificationQueue
	wg       sync.WaitGroup
}

func NewNotificationWorker(notifier notify.Notifier, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

// Start subscribes and sends in the background. Send failures are logged and
// the delivery discarded; notifications are never retried against the core.
func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for msg := range msgs {
			if err := w.notifier.Send(ctx, msg.Data); err != nil {
				log.Warn("notification send failed",
					zap.String("id", msg.Data.ID),
					zap.Int("artist_id", msg.Data.ArtistID),
					zap.Error(err))
				msg.Nack(false)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func (w *NotificationWorkerImpl) Wait() {
	w.wg.Wait()
}
