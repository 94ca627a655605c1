package impl

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"time"

	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationRepositoryImpl{DB: db}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *models.Notification) error {
	return r.DB.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.DB.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var notifications []models.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) Save(ctx context.Context, notification *models.Notification) error {
	return r.DB.WithContext(ctx).Save(notification).Error
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, notification *models.Notification) error {
	return r.DB.WithContext(ctx).Delete(notification).Error
}
