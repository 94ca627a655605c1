package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type TrackableRepository[T any] struct {
	mock.Mock
}

func (m *TrackableRepository[T]) Create(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *TrackableRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *TrackableRepository[T]) FindByIDUnscoped(ctx context.Context, id uint) (*T, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*T)
	return item, args.Error(1)
}

func (m *TrackableRepository[T]) FindByChild(ctx context.Context, childID uint) ([]T, error) {
	args := m.Called(ctx, childID)
	items, _ := args.Get(0).([]T)
	return items, args.Error(1)
}

func (m *TrackableRepository[T]) FindByChildSince(ctx context.Context, childID uint, since time.Time) ([]T, error) {
	args := m.Called(ctx, childID, since)
	items, _ := args.Get(0).([]T)
	return items, args.Error(1)
}

func (m *TrackableRepository[T]) CountByChildSince(ctx context.Context, childID uint, since time.Time) (int64, error) {
	args := m.Called(ctx, childID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TrackableRepository[T]) Save(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *TrackableRepository[T]) Delete(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
