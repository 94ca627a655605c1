package services

import (
	"BabyTracker/mail"
	"BabyTracker/models"
	"BabyTracker/queue"
	"BabyTracker/repositories"
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
)

// NotificationWorker drains the notification queue. It never retries; a
// failing job is logged by the queue and dropped.
type NotificationWorker struct {
	Queue            queue.Queue
	Notifications    *NotificationService
	NotificationRepo repositories.NotificationRepository
	UserRepo         repositories.UserRepository
	InvitationRepo   repositories.InvitationRepository
	Mailer           mail.Sender
	Push             PushSender
	AppURL           string

	logger *slog.Logger
}

func NewNotificationWorker(
	q queue.Queue,
	notifications *NotificationService,
	invitationRepo repositories.InvitationRepository,
	mailer mail.Sender,
	push PushSender,
	appURL string,
	logger *slog.Logger,
) *NotificationWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationWorker{
		Queue:            q,
		Notifications:    notifications,
		NotificationRepo: notifications.NotificationRepo,
		UserRepo:         notifications.UserRepo,
		InvitationRepo:   invitationRepo,
		Mailer:           mailer,
		Push:             push,
		AppURL:           strings.TrimRight(appURL, "/"),
		logger:           logger,
	}
}

// Run blocks until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) error {
	w.logger.Info("notification worker started")
	return w.Queue.Consume(ctx, w.Handle)
}

func (w *NotificationWorker) Handle(ctx context.Context, job queue.Job) error {
	switch job.Kind {
	case queue.KindSendEmail:
		return w.sendEmail(ctx, job.NotificationID)
	case queue.KindSendInvitation:
		return w.sendInvitation(ctx, job.InvitationID)
	case queue.KindReminder:
		return w.Notifications.Create(ctx, &models.Notification{
			UserID:  job.UserID,
			ChildID: job.ChildID,
			Type:    models.NotificationReminder,
			Title:   "Reminder",
			Message: job.Message,
		})
	case queue.KindSendPush:
		return w.sendPush(ctx, job.NotificationID)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (w *NotificationWorker) sendEmail(ctx context.Context, notificationID uint) error {
	n, err := w.NotificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("load notification %d: %w", notificationID, err)
	}
	user, err := w.UserRepo.FindByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", n.UserID, err)
	}
	if !user.EmailNotifications {
		w.logger.Debug("email skipped, user opted out", "user_id", user.ID)
		return nil
	}

	subject := n.Title
	if subject == "" {
		subject = "Baby Tracker notification"
	}
	return w.Mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: subject,
		Text:    fmt.Sprintf("Hi %s,\n\n%s\n\n%s/notifications\n", user.FirstName, n.Message, w.AppURL),
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>%s</p><p><a href=\"%s/notifications\">Open Baby Tracker</a></p>",
			html.EscapeString(user.FirstName), html.EscapeString(n.Message), w.AppURL),
	})
}

func (w *NotificationWorker) sendInvitation(ctx context.Context, invitationID uint) error {
	inv, err := w.InvitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		return fmt.Errorf("load invitation %d: %w", invitationID, err)
	}
	inviter := "A family member"
	if u, err := w.UserRepo.FindByID(ctx, inv.InvitedByUserID); err == nil {
		inviter = u.FullName()
	}
	familyName := "their family"
	if inv.Family != nil {
		familyName = inv.Family.Name
	}

	link := w.AppURL + "/invitations/" + inv.Token
	return w.Mailer.Send(ctx, mail.Message{
		To:      inv.Email,
		Subject: fmt.Sprintf("%s invited you to %s on Baby Tracker", inviter, familyName),
		Text: fmt.Sprintf("%s invited you to join %s as %s.\n\nAccept the invitation: %s\n\nThe link expires on %s.\n",
			inviter, familyName, inv.Role, link, inv.ExpiresAt.Format("January 2, 2006")),
		HTML: fmt.Sprintf("<p>%s invited you to join <strong>%s</strong> as %s.</p><p><a href=\"%s\">Accept the invitation</a></p><p>The link expires on %s.</p>",
			html.EscapeString(inviter), html.EscapeString(familyName), inv.Role, link, inv.ExpiresAt.Format("January 2, 2006")),
	})
}

func (w *NotificationWorker) sendPush(ctx context.Context, notificationID uint) error {
	if w.Push == nil {
		return nil
	}
	n, err := w.NotificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("load notification %d: %w", notificationID, err)
	}
	user, err := w.UserRepo.FindByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", n.UserID, err)
	}
	if user.DeviceToken == "" {
		return nil
	}
	data := map[string]string{
		"notificationId": strconv.FormatUint(uint64(n.ID), 10),
		"type":           n.Type,
	}
	return w.Push.Send(ctx, user.DeviceToken, n.Title, n.Message, data)
}
