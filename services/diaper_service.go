package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"time"
)

type DiaperService struct {
	*TrackableService[models.Diaper, *models.Diaper]
}

func NewDiaperService(repo repositories.TrackableRepository[models.Diaper], access *AccessService, emitter Emitter) *DiaperService {
	return &DiaperService{NewTrackableService[models.Diaper, *models.Diaper](repo, access, emitter)}
}

func (s *DiaperService) GetStatistics(ctx context.Context, userID, childID uint) (*models.DiaperStatistics, error) {
	now := s.now()
	diapers, err := s.Recent(ctx, userID, childID, now.Add(-week))
	if err != nil {
		return nil, err
	}
	return SummarizeDiapers(diapers, now), nil
}

func SummarizeDiapers(diapers []models.Diaper, now time.Time) *models.DiaperStatistics {
	stats := &models.DiaperStatistics{
		Last24Hours: diaperWindow(diapers, now.Add(-day)),
		Last7Days:   diaperWindow(diapers, now.Add(-week)),
	}
	stats.AveragePerDay = round1(float64(stats.Last7Days.Count) / 7)
	if len(diapers) > 0 {
		last := diapers[0].OccurredAt
		stats.LastChangeAt = &last
	}
	return stats
}

func diaperWindow(diapers []models.Diaper, since time.Time) models.DiaperWindowStats {
	w := models.DiaperWindowStats{ByType: map[string]int{}}
	for _, d := range diapers {
		if d.OccurredAt.Before(since) {
			continue
		}
		w.Count++
		w.ByType[d.Type]++
		if d.HasRash {
			w.RashCount++
		}
	}
	return w
}
