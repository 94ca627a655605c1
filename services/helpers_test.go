package services

import (
	"BabyTracker/mail"
	"BabyTracker/models"
	"BabyTracker/queue"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type emitted struct {
	name    string
	payload any
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (r *recordingEmitter) Emit(name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{name: name, payload: payload})
}

func (r *recordingEmitter) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.name)
	}
	return out
}

func (r *recordingEmitter) last() emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []queue.Job
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, job queue.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Consume(ctx context.Context, _ queue.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (q *fakeQueue) Close() error { return nil }

func (q *fakeQueue) kinds() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, j.Kind)
	}
	return out
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeInvitationMailer struct {
	ids []uint
}

func (m *fakeInvitationMailer) SendInvitation(_ context.Context, invitationID uint) error {
	m.ids = append(m.ids, invitationID)
	return nil
}

type fakeNotifier struct {
	created []*models.Notification
}

func (n *fakeNotifier) Create(_ context.Context, notification *models.Notification) error {
	n.created = append(n.created, notification)
	return nil
}

type fakePush struct {
	tokens []string
}

func (p *fakePush) Send(_ context.Context, token, _, _ string, _ map[string]string) error {
	p.tokens = append(p.tokens, token)
	return nil
}

func ptr[T any](v T) *T { return &v }
