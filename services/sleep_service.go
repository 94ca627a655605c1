package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"time"
)

type SleepService struct {
	*TrackableService[models.Sleep, *models.Sleep]
}

func NewSleepService(repo repositories.TrackableRepository[models.Sleep], access *AccessService, emitter Emitter) *SleepService {
	return &SleepService{NewTrackableService[models.Sleep, *models.Sleep](repo, access, emitter)}
}

func (s *SleepService) GetStatistics(ctx context.Context, userID, childID uint) (*models.SleepStatistics, error) {
	now := s.now()
	sleeps, err := s.Recent(ctx, userID, childID, now.Add(-week))
	if err != nil {
		return nil, err
	}
	return SummarizeSleeps(sleeps, now), nil
}

// SummarizeSleeps only counts minutes for finished sleeps; an open sleep
// marks the summary as ongoing.
func SummarizeSleeps(sleeps []models.Sleep, now time.Time) *models.SleepStatistics {
	stats := &models.SleepStatistics{
		Last24Hours: sleepWindow(sleeps, now.Add(-day)),
		Last7Days:   sleepWindow(sleeps, now.Add(-week)),
	}
	stats.AverageMinutesPerDay = round1(float64(stats.Last7Days.TotalMinutes) / 7)
	for i := range sleeps {
		if sleeps[i].EndTime == nil {
			stats.Ongoing = true
			break
		}
	}
	return stats
}

func sleepWindow(sleeps []models.Sleep, since time.Time) models.SleepWindowStats {
	w := models.SleepWindowStats{ByType: map[string]int{}, ByQuality: map[string]int{}}
	finished := 0
	for i := range sleeps {
		sl := &sleeps[i]
		if sl.OccurredAt.Before(since) {
			continue
		}
		w.Count++
		if sl.Type != "" {
			w.ByType[sl.Type]++
		}
		if sl.Quality != "" {
			w.ByQuality[sl.Quality]++
		}
		if sl.EndTime == nil {
			continue
		}
		minutes := int(sl.Duration().Minutes())
		finished++
		w.TotalMinutes += minutes
		if minutes > w.LongestMinutes {
			w.LongestMinutes = minutes
		}
	}
	if finished > 0 {
		w.AverageMinutes = round1(float64(w.TotalMinutes) / float64(finished))
	}
	return w
}
