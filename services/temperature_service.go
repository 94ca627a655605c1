package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
)

type TemperatureService struct {
	*TrackableService[models.Temperature, *models.Temperature]
}

func NewTemperatureService(repo repositories.TrackableRepository[models.Temperature], access *AccessService, emitter Emitter) *TemperatureService {
	return &TemperatureService{NewTrackableService[models.Temperature, *models.Temperature](repo, access, emitter)}
}

// GetStatistics covers the last seven days.
func (s *TemperatureService) GetStatistics(ctx context.Context, userID, childID uint) (*models.TemperatureStatistics, error) {
	readings, err := s.Recent(ctx, userID, childID, s.now().Add(-week))
	if err != nil {
		return nil, err
	}
	return SummarizeTemperatures(readings), nil
}

func SummarizeTemperatures(readings []models.Temperature) *models.TemperatureStatistics {
	stats := &models.TemperatureStatistics{Count: len(readings), ByMethod: map[string]int{}}
	if len(readings) == 0 {
		return stats
	}

	latest := readings[0]
	stats.Latest = &latest
	stats.Min, stats.Max = readings[0].Celsius, readings[0].Celsius
	var sum float64
	for i := range readings {
		t := &readings[i]
		sum += t.Celsius
		if t.Celsius < stats.Min {
			stats.Min = t.Celsius
		}
		if t.Celsius > stats.Max {
			stats.Max = t.Celsius
		}
		if t.IsFever() {
			stats.FeverCount++
		}
		if t.Method != "" {
			stats.ByMethod[t.Method]++
		}
	}
	stats.Average = round1(sum / float64(len(readings)))
	return stats
}
