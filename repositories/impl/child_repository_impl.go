package impl

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"

	"gorm.io/gorm"
)

type ChildRepositoryImpl struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) repositories.ChildRepository {
	return &ChildRepositoryImpl{DB: db}
}

func (r *ChildRepositoryImpl) Create(ctx context.Context, child *models.Child) error {
	return r.DB.WithContext(ctx).Omit("Family").Create(child).Error
}

func (r *ChildRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Child, error) {
	var child models.Child
	if err := r.DB.WithContext(ctx).First(&child, id).Error; err != nil {
		return nil, translate(err)
	}
	return &child, nil
}

func (r *ChildRepositoryImpl) FindByFamily(ctx context.Context, familyID uint) ([]models.Child, error) {
	var children []models.Child
	err := r.DB.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("birth_date ASC").
		Find(&children).Error
	return children, err
}

func (r *ChildRepositoryImpl) Save(ctx context.Context, child *models.Child) error {
	return r.DB.WithContext(ctx).Omit("Family").Save(child).Error
}

func (r *ChildRepositoryImpl) FindGrant(ctx context.Context, userID, childID uint) (*models.UserChild, error) {
	var grants []models.UserChild
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND child_id = ?", userID, childID).
		Limit(1).
		Find(&grants).Error
	if err != nil || len(grants) == 0 {
		return nil, err
	}
	return &grants[0], nil
}

func (r *ChildRepositoryImpl) SaveGrant(ctx context.Context, grant *models.UserChild) error {
	return r.DB.WithContext(ctx).Save(grant).Error
}

func (r *ChildRepositoryImpl) DeleteGrant(ctx context.Context, userID, childID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND child_id = ?", userID, childID).
		Delete(&models.UserChild{}).Error
}
