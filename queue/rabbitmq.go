package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueueName = "notifications"

// RabbitQueue publishes jobs to a durable RabbitMQ queue and consumes them
// with manual acks. Failed jobs are rejected without requeue.
type RabbitQueue struct {
	url    string
	name   string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitQueue(url, name string, logger *slog.Logger) *RabbitQueue {
	if name == "" {
		name = DefaultQueueName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RabbitQueue{url: url, name: name, logger: logger}
}

func (q *RabbitQueue) Enqueue(ctx context.Context, job Job) error {
	body, err := encode(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ch, err := q.publishChannel()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", q.name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         job.Kind,
		Body:         body,
	})
	if err != nil {
		// drop the channel so the next publish redials
		q.reset()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// publishChannel must be called with mu held.
func (q *RabbitQueue) publishChannel() (*amqp.Channel, error) {
	if q.ch != nil && !q.ch.IsClosed() {
		return q.ch, nil
	}
	q.reset()

	conn, err := amqp.Dial(q.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(q.name, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	q.conn, q.ch = conn, ch
	return ch, nil
}

func (q *RabbitQueue) reset() {
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
	q.conn, q.ch = nil, nil
}

// Consume keeps a consumer attached, redialing with exponential backoff
// (capped at 30s) whenever the connection drops.
func (q *RabbitQueue) Consume(ctx context.Context, handler Handler) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(q.url)
		if err != nil {
			q.logger.Warn("rabbitmq dial failed", "error", err, "retry_in", backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = q.consumeLoop(ctx, conn, handler)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		q.logger.Warn("rabbitmq consume loop ended, reconnecting", "error", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (q *RabbitQueue) consumeLoop(ctx context.Context, conn *amqp.Connection, handler Handler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		q.logger.Warn("rabbitmq qos failed", "error", err)
	}
	if _, err := ch.QueueDeclare(q.name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	deliveries, err := ch.Consume(q.name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			q.handle(ctx, d, handler)
		}
	}
}

func (q *RabbitQueue) handle(ctx context.Context, d amqp.Delivery, handler Handler) {
	job, err := decode(d.Body)
	if err == nil {
		err = handler(ctx, job)
	}
	if err != nil {
		q.logger.Error("job failed", "kind", job.Kind, "error", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (q *RabbitQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.reset()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
