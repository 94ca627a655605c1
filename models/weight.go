package models

import "errors"

type Weight struct {
	Trackable
	WeightKg            float64  `json:"weightKg" gorm:"not null"`
	HeightCm            *float64 `json:"heightCm"`
	HeadCircumferenceCm *float64 `json:"headCircumferenceCm"`
}

func (*Weight) Kind() string { return KindWeight }

func (w *Weight) Validate() error {
	if w.WeightKg <= 0 {
		return errors.New("weightKg must be positive")
	}
	return nil
}

type CreateWeightRequest struct {
	TrackableInput
	WeightKg            float64  `json:"weightKg" binding:"required,gt=0"`
	HeightCm            *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	HeadCircumferenceCm *float64 `json:"headCircumferenceCm" binding:"omitempty,gt=0"`
}

func (r *CreateWeightRequest) ToModel() *Weight {
	return &Weight{
		Trackable:           r.base(),
		WeightKg:            r.WeightKg,
		HeightCm:            r.HeightCm,
		HeadCircumferenceCm: r.HeadCircumferenceCm,
	}
}

type UpdateWeightRequest struct {
	TrackablePatch
	WeightKg            *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	HeightCm            *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	HeadCircumferenceCm *float64 `json:"headCircumferenceCm" binding:"omitempty,gt=0"`
}

func (r *UpdateWeightRequest) Apply(w *Weight) {
	r.apply(&w.Trackable)
	if r.WeightKg != nil {
		w.WeightKg = *r.WeightKg
	}
	if r.HeightCm != nil {
		w.HeightCm = r.HeightCm
	}
	if r.HeadCircumferenceCm != nil {
		w.HeadCircumferenceCm = r.HeadCircumferenceCm
	}
}

type WeightStatistics struct {
	Count           int      `json:"count"`
	Latest          *Weight  `json:"latest"`
	Previous        *Weight  `json:"previous"`
	ChangeKg        float64  `json:"changeKg"`
	RatePerDayGrams *float64 `json:"ratePerDayGrams"`
	MinKg           float64  `json:"minKg"`
	MaxKg           float64  `json:"maxKg"`
}
