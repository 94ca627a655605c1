package services

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// PushSender delivers a push notification to one device.
type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushService sends through Firebase Cloud Messaging.
type PushService struct {
	client messagingClient
	logger *slog.Logger
}

func NewPushService(ctx context.Context, app *firebase.App, logger *slog.Logger) (*PushService, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}
	return &PushService{client: client, logger: logger}, nil
}

func (s *PushService) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is empty")
	}

	id, err := s.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Token:        deviceToken,
	})
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	s.logger.Debug("push sent", "message_id", id)
	return nil
}
