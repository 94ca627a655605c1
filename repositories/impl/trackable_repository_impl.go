package impl

import (
	"BabyTracker/repositories"
	"context"
	"time"

	"gorm.io/gorm"
)

type TrackableRepositoryImpl[T any] struct {
	DB *gorm.DB
}

func NewTrackableRepository[T any](db *gorm.DB) repositories.TrackableRepository[T] {
	return &TrackableRepositoryImpl[T]{DB: db}
}

func (r *TrackableRepositoryImpl[T]) Create(ctx context.Context, item *T) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *TrackableRepositoryImpl[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *TrackableRepositoryImpl[T]) FindByIDUnscoped(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.DB.WithContext(ctx).Unscoped().First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *TrackableRepositoryImpl[T]) FindByChild(ctx context.Context, childID uint) ([]T, error) {
	var items []T
	err := r.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("occurred_at DESC").
		Find(&items).Error
	return items, err
}

func (r *TrackableRepositoryImpl[T]) FindByChildSince(ctx context.Context, childID uint, since time.Time) ([]T, error) {
	var items []T
	err := r.DB.WithContext(ctx).
		Where("child_id = ? AND occurred_at >= ?", childID, since).
		Order("occurred_at DESC").
		Find(&items).Error
	return items, err
}

func (r *TrackableRepositoryImpl[T]) CountByChildSince(ctx context.Context, childID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(new(T)).
		Where("child_id = ? AND occurred_at >= ?", childID, since).
		Count(&count).Error
	return count, err
}

func (r *TrackableRepositoryImpl[T]) Save(ctx context.Context, item *T) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// Delete is a soft delete: the kinds embed gorm.DeletedAt.
func (r *TrackableRepositoryImpl[T]) Delete(ctx context.Context, item *T) error {
	return r.DB.WithContext(ctx).Delete(item).Error
}
