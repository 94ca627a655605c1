package services

import (
	"BabyTracker/models"
	"BabyTracker/repositories"
	"context"
	"math"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

type FeedService struct {
	*TrackableService[models.Feed, *models.Feed]
}

func NewFeedService(repo repositories.TrackableRepository[models.Feed], access *AccessService, emitter Emitter) *FeedService {
	return &FeedService{NewTrackableService[models.Feed, *models.Feed](repo, access, emitter)}
}

func (s *FeedService) GetStatistics(ctx context.Context, userID, childID uint) (*models.FeedStatistics, error) {
	now := s.now()
	feeds, err := s.Recent(ctx, userID, childID, now.Add(-week))
	if err != nil {
		return nil, err
	}
	return SummarizeFeeds(feeds, now), nil
}

// SummarizeFeeds expects feeds newest first, all within the last seven days.
func SummarizeFeeds(feeds []models.Feed, now time.Time) *models.FeedStatistics {
	stats := &models.FeedStatistics{
		Last24Hours: feedWindow(feeds, now.Add(-day)),
		Last7Days:   feedWindow(feeds, now.Add(-week)),
	}
	stats.AveragePerDay = round1(float64(stats.Last7Days.Count) / 7)
	if len(feeds) > 0 {
		last := feeds[0].OccurredAt
		stats.LastFeedAt = &last
	}
	return stats
}

func feedWindow(feeds []models.Feed, since time.Time) models.FeedWindowStats {
	w := models.FeedWindowStats{ByMethod: map[string]int{}, BySide: map[string]int{}}
	withAmount := 0
	for _, f := range feeds {
		if f.OccurredAt.Before(since) {
			continue
		}
		w.Count++
		w.ByMethod[f.Method]++
		if f.Side != "" {
			w.BySide[f.Side]++
		}
		if f.AmountML != nil {
			w.TotalVolume += *f.AmountML
			withAmount++
		}
		if f.DurationMinutes != nil {
			w.TotalDurationMinutes += *f.DurationMinutes
		}
	}
	if withAmount > 0 {
		w.AverageVolume = round1(w.TotalVolume / float64(withAmount))
	}
	return w
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
