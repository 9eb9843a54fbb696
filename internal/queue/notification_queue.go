package queue

import (
	"context"
	"errors"

	"artist-booking/internal/model"
)

var ErrQueueFull = errors.New("notification queue is full")

type Delivery struct {
	Data *model.Notification
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	Publish(ctx context.Context, n *model.Notification) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

// NotificationQueueImpl is the in-process channel queue.
type NotificationQueueImpl struct {
	ch chan *model.Notification
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	return &NotificationQueueImpl{
		ch: make(chan *model.Notification, bufferSize),
	}
}

// Publish never blocks the caller; a full buffer is reported as ErrQueueFull.
func (q *NotificationQueueImpl) Publish(ctx context.Context, n *model.Notification) error {
	select {
	case q.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *NotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: n,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							select {
							case q.ch <- n:
							default:
							}
						}
					},
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
