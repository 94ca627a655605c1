package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"time"
)

type BathService struct {
	*TrackableService[models.Bath, *models.Bath]
}

func NewBathService(repo repositories.TrackableRepository[models.Bath], access *AccessService, emitter Emitter) *BathService {
	return &BathService{NewTrackableService[models.Bath, *models.Bath](repo, access, emitter)}
}

// GetStatistics covers the last thirty days.
func (s *BathService) GetStatistics(ctx context.Context, userID, childID uint) (*models.BathStatistics, error) {
	now := s.now()
	baths, err := s.Recent(ctx, userID, childID, now.Add(-30*day))
	if err != nil {
		return nil, err
	}
	return SummarizeBaths(baths, now), nil
}

func SummarizeBaths(baths []models.Bath, now time.Time) *models.BathStatistics {
	stats := &models.BathStatistics{Count: len(baths), ByType: map[string]int{}}
	if len(baths) == 0 {
		return stats
	}

	last := baths[0].OccurredAt
	stats.LastBathAt = &last
	since := int(now.Sub(last) / day)
	stats.DaysSinceLast = &since

	timed, total := 0, 0
	for _, b := range baths {
		if b.Type != "" {
			stats.ByType[b.Type]++
		}
		if b.DurationMinutes != nil {
			timed++
			total += *b.DurationMinutes
		}
	}
	if timed > 0 {
		stats.AverageDurationMinutes = round1(float64(total) / float64(timed))
	}
	return stats
}
