package interfaces

import (
	"BabyTracker/models"
	"context"
)

// MembershipLookup is the narrow read port over family membership. Children,
// events, trackables and the realtime gateway depend on it rather than on
// the family service.
type MembershipLookup interface {
	// FindActiveMembership returns nil, nil when the user is not an active member.
	FindActiveMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error)
	ActiveMemberships(ctx context.Context, userID uint) ([]models.UserFamily, error)
	FamilyExists(ctx context.Context, familyID uint) (bool, error)
}
