package queue

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryQueue is an in-process queue backed by a buffered channel. Jobs are
// lost on restart.
type MemoryQueue struct {
	jobs   chan Job
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func NewMemoryQueue(size int, logger *slog.Logger) *MemoryQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryQueue{
		jobs:   make(chan Job, size),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Enqueue never blocks; a full buffer rejects the job.
func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Consume(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case job := <-q.jobs:
			if err := handler(ctx, job); err != nil {
				q.logger.Error("job failed", "kind", job.Kind, "error", err)
			}
		}
	}
}

func (q *MemoryQueue) Close() error {
	q.once.Do(func() { close(q.done) })
	return nil
}
