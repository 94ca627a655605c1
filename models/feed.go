package models

import (
	"errors"
	"time"
)

const (
	FeedMethodBreast = "breast"
	FeedMethodBottle = "bottle"
	FeedMethodSolid  = "solid"
)

type Feed struct {
	Trackable
	Method          string   `json:"method" gorm:"size:16;not null"`
	AmountML        *float64 `json:"amountMl"`
	DurationMinutes *int     `json:"durationMinutes"`
	Side            string   `json:"side" gorm:"size:8"`
	FoodType        string   `json:"foodType"`
}

func (*Feed) Kind() string { return KindFeed }

func (f *Feed) Validate() error {
	if f.Side != "" && f.Method != FeedMethodBreast {
		return errors.New("side only applies to breast feeds")
	}
	return nil
}

type CreateFeedRequest struct {
	TrackableInput
	Method          string   `json:"method" binding:"required,oneof=breast bottle solid"`
	AmountML        *float64 `json:"amountMl" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	Side            string   `json:"side" binding:"omitempty,oneof=left right both"`
	FoodType        string   `json:"foodType"`
}

func (r *CreateFeedRequest) ToModel() *Feed {
	return &Feed{
		Trackable:       r.base(),
		Method:          r.Method,
		AmountML:        r.AmountML,
		DurationMinutes: r.DurationMinutes,
		Side:            r.Side,
		FoodType:        r.FoodType,
	}
}

type UpdateFeedRequest struct {
	TrackablePatch
	Method          *string  `json:"method" binding:"omitempty,oneof=breast bottle solid"`
	AmountML        *float64 `json:"amountMl" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	Side            *string  `json:"side" binding:"omitempty,oneof=left right both"`
	FoodType        *string  `json:"foodType"`
}

func (r *UpdateFeedRequest) Apply(f *Feed) {
	r.apply(&f.Trackable)
	if r.Method != nil {
		f.Method = *r.Method
	}
	if r.AmountML != nil {
		f.AmountML = r.AmountML
	}
	if r.DurationMinutes != nil {
		f.DurationMinutes = r.DurationMinutes
	}
	if r.Side != nil {
		f.Side = *r.Side
	}
	if r.FoodType != nil {
		f.FoodType = *r.FoodType
	}
}

type FeedWindowStats struct {
	Count                int            `json:"count"`
	TotalVolume          float64        `json:"totalVolume"`
	AverageVolume        float64        `json:"averageVolume"`
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
	ByMethod             map[string]int `json:"byMethod"`
	BySide               map[string]int `json:"bySide"`
}

type FeedStatistics struct {
	Last24Hours   FeedWindowStats `json:"last24Hours"`
	Last7Days     FeedWindowStats `json:"last7Days"`
	AveragePerDay float64         `json:"averagePerDay"`
	LastFeedAt    *time.Time      `json:"lastFeedAt"`
}
