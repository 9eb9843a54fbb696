package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"artist-booking/internal/model"
	"artist-booking/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "notifications:stream"
	ConsumerGroupName  = "notification-workers"
	ConsumerNamePrefix = "worker"

	payloadField = "notification"
)

// RedisStreamConfig tunes redelivery; zero values fall back to defaults.
type RedisStreamConfig struct {
	ClaimMinIdleTime   time.Duration // idle time before XAUTOCLAIM takes a pending entry
	MaxRetryCount      int           // deliveries after which an entry is dropped
	ReadGroupBlockTime time.Duration
	MaxLen             int64 // approximate stream cap
}

func defaultRedisStreamConfig() RedisStreamConfig {
	return RedisStreamConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		MaxLen:             10000,
	}
}

type RedisStreamNotificationQueueImpl struct {
	client       *redis.Client
	streamKey    string
	groupName    string
	consumerName string
	cfg          RedisStreamConfig
}

// NewRedisStreamNotificationQueue creates the consumer group if needed. config may be nil.
func NewRedisStreamNotificationQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamConfig) (NotificationQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	cfg := defaultRedisStreamConfig()
	if config != nil {
		if config.ClaimMinIdleTime > 0 {
			cfg.ClaimMinIdleTime = config.ClaimMinIdleTime
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.ReadGroupBlockTime > 0 {
			cfg.ReadGroupBlockTime = config.ReadGroupBlockTime
		}
		if config.MaxLen > 0 {
			cfg.MaxLen = config.MaxLen
		}
	}
	q := &RedisStreamNotificationQueueImpl{
		client:       client,
		streamKey:    StreamKey,
		groupName:    ConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", ConsumerNamePrefix, consumerID),
		cfg:          cfg,
	}
	if err := q.ensureConsumerGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamNotificationQueueImpl) ensureConsumerGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.streamKey, q.groupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (q *RedisStreamNotificationQueueImpl) Publish(ctx context.Context, n *model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.streamKey,
		MaxLen: q.cfg.MaxLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{payloadField: string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamNotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		done := make(chan struct{})
		go func() {
			defer close(done)
			q.runAutoClaim(ctx, out)
		}()
		q.runReadLoop(ctx, out)
		<-done
	}()
	return out, nil
}

func (q *RedisStreamNotificationQueueImpl) runReadLoop(ctx context.Context, out chan<- Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			q.readAndDeliver(ctx, out)
		}
	}
}

// readAndDeliver only reads new entries (">"); pending ones come back through XAUTOCLAIM.
func (q *RedisStreamNotificationQueueImpl) readAndDeliver(ctx context.Context, out chan<- Delivery) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: q.consumerName,
		Streams:  []string{q.streamKey, ">"},
		Count:    10,
		Block:    q.cfg.ReadGroupBlockTime,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.WithComponent("mq").Error("XReadGroup failed", zap.Error(err))
		time.Sleep(time.Second)
		return
	}

	for _, stream := range streams {
		if stream.Stream != q.streamKey {
			continue
		}
		for _, msg := range stream.Messages {
			d := q.newDelivery(ctx, msg)
			if d == nil {
				continue
			}
			select {
			case out <- *d:
			case <-ctx.Done():
				return
			}
		}
	}
}

// shouldProcessMessage drops entries that exceeded MaxRetryCount.
func (q *RedisStreamNotificationQueueImpl) shouldProcessMessage(ctx context.Context, messageID string) bool {
	n, err := q.getMessageRetryCount(ctx, messageID)
	if err != nil {
		logger.WithComponent("mq").Warn("getMessageRetryCount failed", zap.String("message_id", messageID), zap.Error(err))
		return true
	}
	if n >= q.cfg.MaxRetryCount {
		logger.WithComponent("mq").Warn("discard poison message",
			zap.String("message_id", messageID), zap.Int("retries", n), zap.Int("max_retries", q.cfg.MaxRetryCount))
		_ = q.client.XAck(ctx, q.streamKey, q.groupName, messageID).Err()
		return false
	}
	return true
}

func (q *RedisStreamNotificationQueueImpl) getMessageRetryCount(ctx context.Context, messageID string) (int, error) {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.streamKey,
		Group:  q.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	return int(pending[0].RetryCount), nil
}

func (q *RedisStreamNotificationQueueImpl) runAutoClaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			claimed, nextID, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   q.streamKey,
				Group:    q.groupName,
				Consumer: q.consumerName,
				MinIdle:  q.cfg.ClaimMinIdleTime,
				Count:    10,
				Start:    startID,
			}).Result()

			if err != nil && !errors.Is(err, redis.Nil) {
				if ctx.Err() == nil {
					logger.WithComponent("mq").Error("XAutoClaim failed", zap.Error(err))
				}
				continue
			}
			if nextID != "" && nextID != "0-0" {
				startID = nextID
			} else {
				startID = "0-0"
			}

			for _, msg := range claimed {
				if !q.shouldProcessMessage(ctx, msg.ID) {
					continue
				}
				d := q.newDelivery(ctx, msg)
				if d == nil {
					continue
				}
				select {
				case out <- *d:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// newDelivery decodes an entry; malformed entries are acked and skipped.
func (q *RedisStreamNotificationQueueImpl) newDelivery(ctx context.Context, msg redis.XMessage) *Delivery {
	log := logger.WithComponent("mq").With(zap.String("message_id", msg.ID))

	raw, ok := msg.Values[payloadField].(string)
	if !ok {
		log.Warn("invalid message: missing notification field")
		_ = q.client.XAck(ctx, q.streamKey, q.groupName, msg.ID).Err()
		return nil
	}
	var n model.Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		log.Warn("unmarshal notification failed", zap.Error(err))
		_ = q.client.XAck(ctx, q.streamKey, q.groupName, msg.ID).Err()
		return nil
	}

	msgID := msg.ID
	return &Delivery{
		Data: &n,
		Ack: func() {
			if err := q.client.XAck(ctx, q.streamKey, q.groupName, msgID).Err(); err != nil {
				log.Error("XAck failed", zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if requeue {
				// left in the PEL; XAUTOCLAIM picks it up after ClaimMinIdleTime
				log.Info("message nack(requeue), will retry", zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
				return
			}
			if err := q.client.XAck(ctx, q.streamKey, q.groupName, msgID).Err(); err != nil {
				log.Error("XAck discard failed", zap.Error(err))
			}
		},
	}
}
