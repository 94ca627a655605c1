package models

import "time"

const (
	DiaperWet   = "wet"
	DiaperDirty = "dirty"
	DiaperMixed = "mixed"
	DiaperDry   = "dry"
)

type Diaper struct {
	Trackable
	Type        string `json:"type" gorm:"size:8;not null"`
	Color       string `json:"color"`
	Consistency string `json:"consistency"`
	HasRash     bool   `json:"hasRash"`
}

func (*Diaper) Kind() string { return KindDiaper }

type CreateDiaperRequest struct {
	TrackableInput
	Type        string `json:"type" binding:"required,oneof=wet dirty mixed dry"`
	Color       string `json:"color"`
	Consistency string `json:"consistency"`
	HasRash     bool   `json:"hasRash"`
}

func (r *CreateDiaperRequest) ToModel() *Diaper {
	return &Diaper{
		Trackable:   r.base(),
		Type:        r.Type,
		Color:       r.Color,
		Consistency: r.Consistency,
		HasRash:     r.HasRash,
	}
}

type UpdateDiaperRequest struct {
	TrackablePatch
	Type        *string `json:"type" binding:"omitempty,oneof=wet dirty mixed dry"`
	Color       *string `json:"color"`
	Consistency *string `json:"consistency"`
	HasRash     *bool   `json:"hasRash"`
}

func (r *UpdateDiaperRequest) Apply(d *Diaper) {
	r.apply(&d.Trackable)
	if r.Type != nil {
		d.Type = *r.Type
	}
	if r.Color != nil {
		d.Color = *r.Color
	}
	if r.Consistency != nil {
		d.Consistency = *r.Consistency
	}
	if r.HasRash != nil {
		d.HasRash = *r.HasRash
	}
}

type DiaperWindowStats struct {
	Count     int            `json:"count"`
	ByType    map[string]int `json:"byType"`
	RashCount int            `json:"rashCount"`
}

type DiaperStatistics struct {
	Last24Hours   DiaperWindowStats `json:"last24Hours"`
	Last7Days     DiaperWindowStats `json:"last7Days"`
	AveragePerDay float64           `json:"averagePerDay"`
	LastChangeAt  *time.Time        `json:"lastChangeAt"`
}
