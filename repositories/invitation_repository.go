package repositories

import (
	"BabyTracker/models"
	"context"
	"time"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, id uint) (*models.Invitation, error)
	FindByToken(ctx context.Context, token string) (*models.Invitation, error)
	// FindPending returns nil, nil when no unaccepted, unexpired invitation exists.
	FindPending(ctx context.Context, familyID uint, email string, now time.Time) (*models.Invitation, error)
	Save(ctx context.Context, invitation *models.Invitation) error
}
