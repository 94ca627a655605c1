package models

import "time"

type Bath struct {
	Trackable
	Type              string   `json:"type" gorm:"size:8"`
	WaterTemperatureC *float64 `json:"waterTemperatureC"`
	DurationMinutes   *int     `json:"durationMinutes"`
	ProductsUsed      string   `json:"productsUsed"`
}

func (*Bath) Kind() string { return KindBath }

type CreateBathRequest struct {
	TrackableInput
	Type              string   `json:"type" binding:"omitempty,oneof=sponge tub shower"`
	WaterTemperatureC *float64 `json:"waterTemperatureC"`
	DurationMinutes   *int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	ProductsUsed      string   `json:"productsUsed"`
}

func (r *CreateBathRequest) ToModel() *Bath {
	return &Bath{
		Trackable:         r.base(),
		Type:              r.Type,
		WaterTemperatureC: r.WaterTemperatureC,
		DurationMinutes:   r.DurationMinutes,
		ProductsUsed:      r.ProductsUsed,
	}
}

type UpdateBathRequest struct {
	TrackablePatch
	Type              *string  `json:"type" binding:"omitempty,oneof=sponge tub shower"`
	WaterTemperatureC *float64 `json:"waterTemperatureC"`
	DurationMinutes   *int     `json:"durationMinutes" binding:"omitempty,gte=0"`
	ProductsUsed      *string  `json:"productsUsed"`
}

func (r *UpdateBathRequest) Apply(b *Bath) {
	r.apply(&b.Trackable)
	if r.Type != nil {
		b.Type = *r.Type
	}
	if r.WaterTemperatureC != nil {
		b.WaterTemperatureC = r.WaterTemperatureC
	}
	if r.DurationMinutes != nil {
		b.DurationMinutes = r.DurationMinutes
	}
	if r.ProductsUsed != nil {
		b.ProductsUsed = *r.ProductsUsed
	}
}

type BathStatistics struct {
	Count                  int            `json:"count"`
	LastBathAt             *time.Time     `json:"lastBathAt"`
	DaysSinceLast          *int           `json:"daysSinceLast"`
	AverageDurationMinutes float64        `json:"averageDurationMinutes"`
	ByType                 map[string]int `json:"byType"`
}
