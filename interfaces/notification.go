package interfaces

import (
	"BabyTracker/models"
	"context"
)

// Notifier creates in-app notifications. Family flows depend on this instead
// of the concrete notification service.
type Notifier interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// InvitationMailer schedules the invitation email for delivery.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, invitationID uint) error
}
