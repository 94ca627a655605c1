package services

import (
	"BabyTracker/events"
	"BabyTracker/models"
	"BabyTracker/queue"
	"BabyTracker/repositories"
	"context"
	"errors"
	"log/slog"
	"time"
)

const defaultNotificationLimit = 50

type NotificationService struct {
	NotificationRepo repositories.NotificationRepository
	UserRepo         repositories.UserRepository
	Access           *AccessService
	Queue            queue.Queue
	Emitter          Emitter

	logger *slog.Logger
	now    func() time.Time
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	access *AccessService,
	q queue.Queue,
	emitter Emitter,
	logger *slog.Logger,
) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Access:           access,
		Queue:            q,
		Emitter:          emitter,
		logger:           logger,
		now:              time.Now,
	}
}

// Create persists the notification, announces it to the user's sockets and
// queues delivery. Only the persist step can fail the call.
func (s *NotificationService) Create(ctx context.Context, n *models.Notification) error {
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	if err := s.NotificationRepo.Create(ctx, n); err != nil {
		return err
	}

	s.Emitter.Emit(events.NotificationCreated, events.NotificationPayload{Notification: n})

	s.enqueue(ctx, queue.SendEmail(n.ID))
	user, err := s.UserRepo.FindByID(ctx, n.UserID)
	if err != nil {
		s.logger.Warn("notification user lookup failed", "notification_id", n.ID, "error", err)
		return nil
	}
	if user.DeviceToken != "" {
		s.enqueue(ctx, queue.SendPush(n.ID))
	}
	return nil
}

func (s *NotificationService) enqueue(ctx context.Context, job queue.Job) {
	if err := s.Queue.Enqueue(ctx, job); err != nil {
		s.logger.Error("enqueue failed", "kind", job.Kind, "error", err)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}
	return s.NotificationRepo.FindByUser(ctx, userID, unreadOnly, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.NotificationRepo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) (*models.Notification, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	n.MarkRead(s.now())
	if err := s.NotificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.NotificationRepo.MarkAllRead(ctx, userID, s.now())
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.NotificationRepo.Delete(ctx, n)
}

// ScheduleReminder queues a reminder; the worker turns it into a notification.
func (s *NotificationService) ScheduleReminder(ctx context.Context, userID uint, req models.ReminderRequest) error {
	if req.ChildID != nil {
		if _, err := s.Access.ResolveChildAccess(ctx, userID, *req.ChildID); err != nil {
			return err
		}
	}
	return s.Queue.Enqueue(ctx, queue.Reminder(userID, req.ChildID, req.Message))
}

// SendInvitation implements interfaces.InvitationMailer.
func (s *NotificationService) SendInvitation(ctx context.Context, invitationID uint) error {
	return s.Queue.Enqueue(ctx, queue.SendInvitation(invitationID))
}

func (s *NotificationService) owned(ctx context.Context, userID, id uint) (*models.Notification, error) {
	n, err := s.NotificationRepo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("Notification not found")
	}
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, NotFound("Notification not found")
	}
	return n, nil
}
