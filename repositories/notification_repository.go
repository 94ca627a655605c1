package repositories

import (
	"BabyTracker/models"
	"context"
	"time"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	FindByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	Save(ctx context.Context, notification *models.Notification) error
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
	Delete(ctx context.Context, notification *models.Notification) error
}
