package models

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	SleepTypeNap   = "nap"
	SleepTypeNight = "night"
)

type Sleep struct {
	Trackable
	StartTime time.Time  `json:"startTime" gorm:"not null"`
	EndTime   *time.Time `json:"endTime"`
	Quality   string     `json:"quality" gorm:"size:8"`
	Type      string     `json:"type" gorm:"size:8"`
	Location  string     `json:"location"`
}

func (*Sleep) Kind() string { return KindSleep }

func (s *Sleep) Validate() error {
	if s.EndTime != nil && s.EndTime.Before(s.StartTime) {
		return errors.New("endTime must not be before startTime")
	}
	return nil
}

// Duration is zero while the sleep is still in progress.
func (s *Sleep) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

func (s Sleep) MarshalJSON() ([]byte, error) {
	type alias Sleep
	return json.Marshal(struct {
		alias
		DurationMinutes int `json:"durationMinutes"`
	}{alias(s), int(s.Duration().Minutes())})
}

type CreateSleepRequest struct {
	TrackableInput
	StartTime time.Time  `json:"startTime" binding:"required"`
	EndTime   *time.Time `json:"endTime"`
	Quality   string     `json:"quality" binding:"omitempty,oneof=good fair poor"`
	Type      string     `json:"type" binding:"omitempty,oneof=nap night"`
	Location  string     `json:"location"`
}

func (r *CreateSleepRequest) ToModel() *Sleep {
	s := &Sleep{
		Trackable: r.base(),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Quality:   r.Quality,
		Type:      r.Type,
		Location:  r.Location,
	}
	if r.OccurredAt == nil {
		s.OccurredAt = r.StartTime
	}
	return s
}

type UpdateSleepRequest struct {
	TrackablePatch
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Quality   *string    `json:"quality" binding:"omitempty,oneof=good fair poor"`
	Type      *string    `json:"type" binding:"omitempty,oneof=nap night"`
	Location  *string    `json:"location"`
}

func (r *UpdateSleepRequest) Apply(s *Sleep) {
	r.apply(&s.Trackable)
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		s.EndTime = r.EndTime
	}
	if r.Quality != nil {
		s.Quality = *r.Quality
	}
	if r.Type != nil {
		s.Type = *r.Type
	}
	if r.Location != nil {
		s.Location = *r.Location
	}
}

type SleepWindowStats struct {
	Count          int            `json:"count"`
	TotalMinutes   int            `json:"totalMinutes"`
	AverageMinutes float64        `json:"averageMinutes"`
	LongestMinutes int            `json:"longestMinutes"`
	ByType         map[string]int `json:"byType"`
	ByQuality      map[string]int `json:"byQuality"`
}

type SleepStatistics struct {
	Last24Hours          SleepWindowStats `json:"last24Hours"`
	Last7Days            SleepWindowStats `json:"last7Days"`
	AverageMinutesPerDay float64          `json:"averageMinutesPerDay"`
	Ongoing              bool             `json:"ongoing"`
}
