package repositories

import (
	"BabyTracker/models"
	"context"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	// FindByChild filters by type when eventType is not empty.
	FindByChild(ctx context.Context, childID uint, eventType string) ([]models.Event, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, event *models.Event) error
	HardDelete(ctx context.Context, event *models.Event) error
}

type MilestoneRepository interface {
	FindAll(ctx context.Context, category string) ([]models.Milestone, error)
	FindByID(ctx context.Context, id uint) (*models.Milestone, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Milestone, error)
	// Seed inserts reference rows whose title is not present yet.
	Seed(ctx context.Context, milestones []models.Milestone) error
	// Upsert inserts new titles and overwrites the other columns of existing ones.
	Upsert(ctx context.Context, milestones []models.Milestone) error
}
