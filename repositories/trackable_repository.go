package repositories

import (
	"context"
	"time"
)

// TrackableRepository is shared by the six trackable kinds. Lookups skip
// soft-deleted rows unless stated otherwise.
type TrackableRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	FindByIDUnscoped(ctx context.Context, id uint) (*T, error)
	FindByChild(ctx context.Context, childID uint) ([]T, error)
	FindByChildSince(ctx context.Context, childID uint, since time.Time) ([]T, error)
	CountByChildSince(ctx context.Context, childID uint, since time.Time) (int64, error)
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, item *T) error
}
