package repositories

import (
	"BabyTracker/models"
	"context"
	"time"
)

type FamilyRepository interface {
	// Create inserts the family and its first membership in one transaction.
	Create(ctx context.Context, family *models.Family, owner *models.UserFamily) error
	FindByID(ctx context.Context, id uint) (*models.Family, error)
	FindByInviteCode(ctx context.Context, code string) (*models.Family, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Family, error)
	Save(ctx context.Context, family *models.Family) error

	// FindMembership returns the row whether or not the user has left.
	FindMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error)
	// FindActiveMembership returns nil, nil when there is no active row.
	FindActiveMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error)
	ActiveMemberships(ctx context.Context, userID uint) ([]models.UserFamily, error)
	ActiveMembers(ctx context.Context, familyID uint) ([]models.UserFamily, error)
	CountActiveByRole(ctx context.Context, familyID uint, role string) (int64, error)
	FamilyExists(ctx context.Context, familyID uint) (bool, error)
	SaveMembership(ctx context.Context, membership *models.UserFamily) error
	ClearPrimary(ctx context.Context, userID uint) error
	MarkLeft(ctx context.Context, membership *models.UserFamily, at time.Time) error
}
