// Package queue moves notification work off the request path.
package queue

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
)

const (
	KindSendEmail      = "send-email"
	KindSendInvitation = "send-invitation"
	KindReminder       = "reminder"
	KindSendPush       = "send-push"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Job is one unit of background work. Which fields are set depends on Kind.
type Job struct {
	Kind           string `json:"kind"`
	NotificationID uint   `json:"notificationId,omitempty"`
	InvitationID   uint   `json:"invitationId,omitempty"`
	UserID         uint   `json:"userId,omitempty"`
	ChildID        *uint  `json:"childId,omitempty"`
	Message        string `json:"message,omitempty"`
}

func SendEmail(notificationID uint) Job {
	return Job{Kind: KindSendEmail, NotificationID: notificationID}
}

func SendPush(notificationID uint) Job {
	return Job{Kind: KindSendPush, NotificationID: notificationID}
}

func SendInvitation(invitationID uint) Job {
	return Job{Kind: KindSendInvitation, InvitationID: invitationID}
}

func Reminder(userID uint, childID *uint, message string) Job {
	return Job{Kind: KindReminder, UserID: userID, ChildID: childID, Message: message}
}

// Handler processes a job. A returned error is logged and the job dropped.
type Handler func(ctx context.Context, job Job) error

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Consume blocks, feeding jobs to handler until ctx is cancelled or the
	// queue is closed.
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

func encode(job Job) ([]byte, error) {
	return json.Marshal(job)
}

func decode(body []byte) (Job, error) {
	var job Job
	err := json.Unmarshal(body, &job)
	return job, err
}
