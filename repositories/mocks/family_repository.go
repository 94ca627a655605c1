package mocks

import (
	"BabyTracker/models"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type FamilyRepository struct {
	mock.Mock
}

func (m *FamilyRepository) Create(ctx context.Context, family *models.Family, owner *models.UserFamily) error {
	args := m.Called(ctx, family, owner)
	return args.Error(0)
}

func (m *FamilyRepository) FindByID(ctx context.Context, id uint) (*models.Family, error) {
	args := m.Called(ctx, id)
	family, _ := args.Get(0).(*models.Family)
	return family, args.Error(1)
}

func (m *FamilyRepository) FindByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	args := m.Called(ctx, code)
	family, _ := args.Get(0).(*models.Family)
	return family, args.Error(1)
}

func (m *FamilyRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *FamilyRepository) FindByUser(ctx context.Context, userID uint) ([]models.Family, error) {
	args := m.Called(ctx, userID)
	families, _ := args.Get(0).([]models.Family)
	return families, args.Error(1)
}

func (m *FamilyRepository) Save(ctx context.Context, family *models.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *FamilyRepository) FindMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	args := m.Called(ctx, userID, familyID)
	membership, _ := args.Get(0).(*models.UserFamily)
	return membership, args.Error(1)
}

func (m *FamilyRepository) FindActiveMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	args := m.Called(ctx, userID, familyID)
	membership, _ := args.Get(0).(*models.UserFamily)
	return membership, args.Error(1)
}

func (m *FamilyRepository) ActiveMemberships(ctx context.Context, userID uint) ([]models.UserFamily, error) {
	args := m.Called(ctx, userID)
	memberships, _ := args.Get(0).([]models.UserFamily)
	return memberships, args.Error(1)
}

func (m *FamilyRepository) ActiveMembers(ctx context.Context, familyID uint) ([]models.UserFamily, error) {
	args := m.Called(ctx, familyID)
	memberships, _ := args.Get(0).([]models.UserFamily)
	return memberships, args.Error(1)
}

func (m *FamilyRepository) CountActiveByRole(ctx context.Context, familyID uint, role string) (int64, error) {
	args := m.Called(ctx, familyID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FamilyRepository) FamilyExists(ctx context.Context, familyID uint) (bool, error) {
	args := m.Called(ctx, familyID)
	return args.Bool(0), args.Error(1)
}

func (m *FamilyRepository) SaveMembership(ctx context.Context, membership *models.UserFamily) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *FamilyRepository) ClearPrimary(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *FamilyRepository) MarkLeft(ctx context.Context, membership *models.UserFamily, at time.Time) error {
	args := m.Called(ctx, membership, at)
	return args.Error(0)
}
