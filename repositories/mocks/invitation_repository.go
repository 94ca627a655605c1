package mocks

import (
	"BabyTracker/models"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type InvitationRepository struct {
	mock.Mock
}

func (m *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *InvitationRepository) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	args := m.Called(ctx, id)
	invitation, _ := args.Get(0).(*models.Invitation)
	return invitation, args.Error(1)
}

func (m *InvitationRepository) FindByToken(ctx context.Context, token string) (*models.Invitation, error) {
	args := m.Called(ctx, token)
	invitation, _ := args.Get(0).(*models.Invitation)
	return invitation, args.Error(1)
}

func (m *InvitationRepository) FindPending(ctx context.Context, familyID uint, email string, now time.Time) (*models.Invitation, error) {
	args := m.Called(ctx, familyID, email, now)
	invitation, _ := args.Get(0).(*models.Invitation)
	return invitation, args.Error(1)
}

func (m *InvitationRepository) Save(ctx context.Context, invitation *models.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}
