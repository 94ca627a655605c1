package impl

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepositoryImpl struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) repositories.EventRepository {
	return &EventRepositoryImpl{DB: db}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.DB.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindByChild(ctx context.Context, childID uint, eventType string) ([]models.Event, error) {
	query := r.DB.WithContext(ctx).Where("child_id = ?", childID)
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}
	var events []models.Event
	err := query.Order("occurred_at DESC").Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) Save(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Save(event).Error
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Delete(event).Error
}

func (r *EventRepositoryImpl) HardDelete(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(event).Error
}

type MilestoneRepositoryImpl struct {
	DB *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) repositories.MilestoneRepository {
	return &MilestoneRepositoryImpl{DB: db}
}

func (r *MilestoneRepositoryImpl) FindAll(ctx context.Context, category string) ([]models.Milestone, error) {
	query := r.DB.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var milestones []models.Milestone
	err := query.Order("expected_age_months ASC, id ASC").Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := r.DB.WithContext(ctx).First(&milestone, id).Error; err != nil {
		return nil, translate(err)
	}
	return &milestone, nil
}

func (r *MilestoneRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	if len(ids) == 0 {
		return milestones, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepositoryImpl) Seed(ctx context.Context, milestones []models.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}
	rows := make([]models.Milestone, len(milestones))
	copy(rows, milestones)
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "title"}}, DoNothing: true}).
		Create(&rows).Error
}

func (r *MilestoneRepositoryImpl) Upsert(ctx context.Context, milestones []models.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "description", "expected_age_months", "min_age_months", "max_age_months"}),
		}).
		Create(&milestones).Error
}
