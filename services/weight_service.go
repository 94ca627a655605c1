package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"math"
	"time"
)

// rateWindow bounds the measurements used for the daily gain rate.
const rateWindow = 30 * day

type WeightService struct {
	*TrackableService[models.Weight, *models.Weight]
}

func NewWeightService(repo repositories.TrackableRepository[models.Weight], access *AccessService, emitter Emitter) *WeightService {
	return &WeightService{NewTrackableService[models.Weight, *models.Weight](repo, access, emitter)}
}

func (s *WeightService) GetStatistics(ctx context.Context, userID, childID uint) (*models.WeightStatistics, error) {
	weights, err := s.FindAll(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	return SummarizeWeights(weights, s.now()), nil
}

// SummarizeWeights expects every measurement of the child, newest first.
func SummarizeWeights(weights []models.Weight, now time.Time) *models.WeightStatistics {
	stats := &models.WeightStatistics{Count: len(weights)}
	if len(weights) == 0 {
		return stats
	}

	latest := weights[0]
	stats.Latest = &latest
	stats.MinKg, stats.MaxKg = latest.WeightKg, latest.WeightKg
	for _, w := range weights {
		stats.MinKg = math.Min(stats.MinKg, w.WeightKg)
		stats.MaxKg = math.Max(stats.MaxKg, w.WeightKg)
	}
	if len(weights) < 2 {
		return stats
	}

	previous := weights[1]
	stats.Previous = &previous
	stats.ChangeKg = math.Round((latest.WeightKg-previous.WeightKg)*1000) / 1000

	oldest := latest
	for _, w := range weights[1:] {
		if w.OccurredAt.Before(now.Add(-rateWindow)) {
			break
		}
		oldest = w
	}
	days := latest.OccurredAt.Sub(oldest.OccurredAt).Hours() / 24
	if days >= 1 {
		rate := round1((latest.WeightKg - oldest.WeightKg) * 1000 / days)
		stats.RatePerDayGrams = &rate
	}
	return stats
}
