package mocks

import (
	"BabyTracker/models"
	"context"

	"github.com/stretchr/testify/mock"
)

type ChildRepository struct {
	mock.Mock
}

func (m *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *ChildRepository) FindByID(ctx context.Context, id uint) (*models.Child, error) {
	args := m.Called(ctx, id)
	child, _ := args.Get(0).(*models.Child)
	return child, args.Error(1)
}

func (m *ChildRepository) FindByFamily(ctx context.Context, familyID uint) ([]models.Child, error) {
	args := m.Called(ctx, familyID)
	children, _ := args.Get(0).([]models.Child)
	return children, args.Error(1)
}

func (m *ChildRepository) Save(ctx context.Context, child *models.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *ChildRepository) FindGrant(ctx context.Context, userID, childID uint) (*models.UserChild, error) {
	args := m.Called(ctx, userID, childID)
	grant, _ := args.Get(0).(*models.UserChild)
	return grant, args.Error(1)
}

func (m *ChildRepository) SaveGrant(ctx context.Context, grant *models.UserChild) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *ChildRepository) DeleteGrant(ctx context.Context, userID, childID uint) error {
	args := m.Called(ctx, userID, childID)
	return args.Error(0)
}
