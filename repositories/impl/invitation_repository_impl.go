package impl

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type InvitationRepositoryImpl struct {
	DB *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) repositories.InvitationRepository {
	return &InvitationRepositoryImpl{DB: db}
}

func (r *InvitationRepositoryImpl) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.DB.WithContext(ctx).Omit("Family").Create(invitation).Error
}

func (r *InvitationRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.DB.WithContext(ctx).Preload("Family").First(&invitation, id).Error; err != nil {
		return nil, translate(err)
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) FindByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.DB.WithContext(ctx).Preload("Family").Where("token = ?", token).First(&invitation).Error
	if err != nil {
		return nil, translate(err)
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) FindPending(ctx context.Context, familyID uint, email string, now time.Time) (*models.Invitation, error) {
	var invitations []models.Invitation
	err := r.DB.WithContext(ctx).
		Where("family_id = ? AND email = ? AND accepted = ? AND expires_at > ?",
			familyID, strings.ToLower(email), false, now).
		Limit(1).
		Find(&invitations).Error
	if err != nil || len(invitations) == 0 {
		return nil, err
	}
	return &invitations[0], nil
}

func (r *InvitationRepositoryImpl) Save(ctx context.Context, invitation *models.Invitation) error {
	return r.DB.WithContext(ctx).Omit("Family").Save(invitation).Error
}
