package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"artist-booking/internal/model"
	"artist-booking/internal/queue"
	"artist-booking/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
	seen chan string
}

func (r *recordingNotifier) Send(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	r.sent = append(r.sent, n.ID)
	r.mu.Unlock()
	r.seen <- n.ID
	if r.fail[n.ID] {
		return errors.New("delivery failed")
	}
	return nil
}

func TestNotificationWorker_DeliversQueuedNotifications(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewNotificationQueue(10)
	n := &recordingNotifier{seen: make(chan string, 10)}

	w := worker.NewNotificationWorker(n, q)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "a", ArtistID: 1}))
	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "b", ArtistID: 2}))

	for _, want := range []string{"a", "b"} {
		select {
		case got := <-n.seen:
			assert.Equal(t, want, got)
		case <-ctx.Done():
			t.Fatalf("timeout waiting for %s", want)
		}
	}
}

func TestNotificationWorker_FailureIsNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := queue.NewNotificationQueue(10)
	n := &recordingNotifier{seen: make(chan string, 10), fail: map[string]bool{"bad": true}}

	w := worker.NewNotificationWorker(n, q)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "bad"}))
	require.NoError(t, q.Publish(ctx, &model.Notification{ID: "good"}))

	assert.Equal(t, "bad", <-n.seen)
	assert.Equal(t, "good", <-n.seen)

	cancel()
	w.Wait()

	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Equal(t, []string{"bad", "good"}, n.sent)
}
