package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobEncoding(t *testing.T) {
	child := uint(7)
	body, err := encode(Reminder(3, &child, "bath time"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"reminder","userId":3,"childId":7,"message":"bath time"}`, string(body))

	job, err := decode([]byte(`{"kind":"send-email","notificationId":12}`))
	require.NoError(t, err)
	assert.Equal(t, SendEmail(12), job)
}

func TestMemoryQueueDeliversInOrder(t *testing.T) {
	q := NewMemoryQueue(4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Enqueue(ctx, SendEmail(1)))
	require.NoError(t, q.Enqueue(ctx, SendPush(1)))

	got := make(chan Job, 2)
	go q.Consume(ctx, func(ctx context.Context, job Job) error {
		got <- job
		return nil
	})

	assert.Equal(t, KindSendEmail, (<-got).Kind)
	assert.Equal(t, KindSendPush, (<-got).Kind)
}

func TestMemoryQueueFailedJobDoesNotStopConsumer(t *testing.T) {
	q := NewMemoryQueue(4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Enqueue(ctx, SendEmail(1)))
	require.NoError(t, q.Enqueue(ctx, SendEmail(2)))

	got := make(chan uint, 2)
	go q.Consume(ctx, func(ctx context.Context, job Job) error {
		got <- job.NotificationID
		if job.NotificationID == 1 {
			return errors.New("smtp down")
		}
		return nil
	})

	assert.Equal(t, uint(1), <-got)
	assert.Equal(t, uint(2), <-got)
}

func TestMemoryQueueFull(t *testing.T) {
	q := NewMemoryQueue(1, nil)
	require.NoError(t, q.Enqueue(context.Background(), SendEmail(1)))
	assert.ErrorIs(t, q.Enqueue(context.Background(), SendEmail(2)), ErrQueueFull)
}

func TestMemoryQueueClose(t *testing.T) {
	q := NewMemoryQueue(1, nil)
	done := make(chan error, 1)
	go func() {
		done <- q.Consume(context.Background(), func(context.Context, Job) error { return nil })
	}()

	require.NoError(t, q.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.ErrorIs(t, q.Enqueue(context.Background(), SendEmail(1)), ErrQueueClosed)
}
