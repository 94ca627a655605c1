package repositories

import (
	"BabyTracker/models"
	"context"
)

type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	FindByID(ctx context.Context, id uint) (*models.Child, error)
	FindByFamily(ctx context.Context, familyID uint) ([]models.Child, error)
	Save(ctx context.Context, child *models.Child) error

	// FindGrant returns nil, nil when the user has no direct grant.
	FindGrant(ctx context.Context, userID, childID uint) (*models.UserChild, error)
	SaveGrant(ctx context.Context, grant *models.UserChild) error
	DeleteGrant(ctx context.Context, userID, childID uint) error
}
