package impl

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"time"

	"gorm.io/gorm"
)

type FamilyRepositoryImpl struct {
	DB *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) *FamilyRepositoryImpl {
	return &FamilyRepositoryImpl{DB: db}
}

var _ repositories.FamilyRepository = (*FamilyRepositoryImpl)(nil)

func (r *FamilyRepositoryImpl) Create(ctx context.Context, family *models.Family, owner *models.UserFamily) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}
		owner.FamilyID = family.ID
		return tx.Create(owner).Error
	})
}

func (r *FamilyRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Family, error) {
	var family models.Family
	if err := r.DB.WithContext(ctx).First(&family, id).Error; err != nil {
		return nil, translate(err)
	}
	return &family, nil
}

func (r *FamilyRepositoryImpl) FindByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	var family models.Family
	if err := r.DB.WithContext(ctx).Where("invite_code = ?", code).First(&family).Error; err != nil {
		return nil, translate(err)
	}
	return &family, nil
}

func (r *FamilyRepositoryImpl) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Family{}).Where("invite_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *FamilyRepositoryImpl) FindByUser(ctx context.Context, userID uint) ([]models.Family, error) {
	var families []models.Family
	err := r.DB.WithContext(ctx).
		Joins("JOIN user_families ON user_families.family_id = families.id").
		Where("user_families.user_id = ? AND user_families.left_at IS NULL", userID).
		Order("families.id").
		Find(&families).Error
	return families, err
}

func (r *FamilyRepositoryImpl) Save(ctx context.Context, family *models.Family) error {
	return r.DB.WithContext(ctx).Omit("Members", "Children").Save(family).Error
}

func (r *FamilyRepositoryImpl) FindMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	var m models.UserFamily
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND family_id = ?", userID, familyID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *FamilyRepositoryImpl) FindActiveMembership(ctx context.Context, userID, familyID uint) (*models.UserFamily, error) {
	var memberships []models.UserFamily
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND family_id = ? AND left_at IS NULL", userID, familyID).
		Limit(1).
		Find(&memberships).Error
	if err != nil || len(memberships) == 0 {
		return nil, err
	}
	return &memberships[0], nil
}

func (r *FamilyRepositoryImpl) ActiveMemberships(ctx context.Context, userID uint) ([]models.UserFamily, error) {
	var memberships []models.UserFamily
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND left_at IS NULL", userID).
		Order("is_primary DESC, joined_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *FamilyRepositoryImpl) ActiveMembers(ctx context.Context, familyID uint) ([]models.UserFamily, error) {
	var memberships []models.UserFamily
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("family_id = ? AND left_at IS NULL", familyID).
		Order("joined_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *FamilyRepositoryImpl) CountActiveByRole(ctx context.Context, familyID uint, role string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.UserFamily{}).
		Where("family_id = ? AND role = ? AND left_at IS NULL", familyID, role).
		Count(&count).Error
	return count, err
}

func (r *FamilyRepositoryImpl) FamilyExists(ctx context.Context, familyID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Family{}).Where("id = ?", familyID).Count(&count).Error
	return count > 0, err
}

func (r *FamilyRepositoryImpl) SaveMembership(ctx context.Context, membership *models.UserFamily) error {
	return r.DB.WithContext(ctx).Omit("User", "Family").Save(membership).Error
}

func (r *FamilyRepositoryImpl) ClearPrimary(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&models.UserFamily{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Update("is_primary", false).Error
}

func (r *FamilyRepositoryImpl) MarkLeft(ctx context.Context, membership *models.UserFamily, at time.Time) error {
	membership.LeftAt = &at
	membership.IsPrimary = false
	return r.DB.WithContext(ctx).Model(membership).
		Updates(map[string]interface{}{"left_at": at, "is_primary": false}).Error
}
