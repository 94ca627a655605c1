package models

import (
	"encoding/json"
	"errors"
)

const FeverThresholdCelsius = 38.0

type Temperature struct {
	Trackable
	Celsius float64 `json:"celsius" gorm:"not null"`
	Method  string  `json:"method" gorm:"size:16"`
}

func (*Temperature) Kind() string { return KindTemperature }

func (t *Temperature) IsFever() bool {
	return t.Celsius >= FeverThresholdCelsius
}

func (t *Temperature) Validate() error {
	if t.Celsius < 30 || t.Celsius > 45 {
		return errors.New("celsius must be between 30 and 45")
	}
	return nil
}

func (t Temperature) MarshalJSON() ([]byte, error) {
	type alias Temperature
	return json.Marshal(struct {
		alias
		IsFever bool `json:"isFever"`
	}{alias(t), t.IsFever()})
}

type CreateTemperatureRequest struct {
	TrackableInput
	Celsius float64 `json:"celsius" binding:"required"`
	Method  string  `json:"method" binding:"omitempty,oneof=oral rectal axillary ear forehead"`
}

func (r *CreateTemperatureRequest) ToModel() *Temperature {
	return &Temperature{Trackable: r.base(), Celsius: r.Celsius, Method: r.Method}
}

type UpdateTemperatureRequest struct {
	TrackablePatch
	Celsius *float64 `json:"celsius"`
	Method  *string  `json:"method" binding:"omitempty,oneof=oral rectal axillary ear forehead"`
}

func (r *UpdateTemperatureRequest) Apply(t *Temperature) {
	r.apply(&t.Trackable)
	if r.Celsius != nil {
		t.Celsius = *r.Celsius
	}
	if r.Method != nil {
		t.Method = *r.Method
	}
}

type TemperatureStatistics struct {
	Count      int            `json:"count"`
	Latest     *Temperature   `json:"latest"`
	Min        float64        `json:"min"`
	Max        float64        `json:"max"`
	Average    float64        `json:"average"`
	FeverCount int            `json:"feverCount"`
	ByMethod   map[string]int `json:"byMethod"`
}
