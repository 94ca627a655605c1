package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	KindFeed        = "feed"
	KindSleep       = "sleep"
	KindDiaper      = "diaper"
	KindTemperature = "temperature"
	KindWeight      = "weight"
	KindBath        = "bath"
)

var TrackableKinds = []string{KindFeed, KindSleep, KindDiaper, KindTemperature, KindWeight, KindBath}

type Attachment struct {
	URL  string `json:"url" binding:"required"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// Trackable holds the columns shared by every caregiving record. OccurredAt is
// when the thing happened, CreatedAt when the row was written.
type Trackable struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ChildID         uint           `json:"childId" gorm:"not null;index"`
	CreatedByUserID uint           `json:"createdByUserId" gorm:"not null"`
	OccurredAt      time.Time      `json:"occurredAt" gorm:"not null;index"`
	Notes           string         `json:"notes"`
	Attachments     []Attachment   `json:"attachments" gorm:"serializer:json"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *Trackable) Base() *Trackable { return t }

// TrackableModel is satisfied by pointers to the concrete kinds.
type TrackableModel[T any] interface {
	*T
	Base() *Trackable
	Kind() string
}

type TrackableCreate[T any] interface {
	Child() uint
	ToModel() *T
}

type TrackableUpdate[T any] interface {
	Apply(*T)
}

// Validator is implemented by models with cross-field rules.
type Validator interface {
	Validate() error
}

type TrackableInput struct {
	ChildID     uint         `json:"childId" binding:"required"`
	OccurredAt  *time.Time   `json:"occurredAt"`
	Notes       string       `json:"notes"`
	Attachments []Attachment `json:"attachments" binding:"omitempty,dive"`
}

func (in TrackableInput) Child() uint { return in.ChildID }

func (in TrackableInput) base() Trackable {
	t := Trackable{ChildID: in.ChildID, Notes: in.Notes, Attachments: in.Attachments}
	if in.OccurredAt != nil {
		t.OccurredAt = *in.OccurredAt
	}
	return t
}

type TrackablePatch struct {
	OccurredAt  *time.Time    `json:"occurredAt"`
	Notes       *string       `json:"notes"`
	Attachments *[]Attachment `json:"attachments"`
}

func (p TrackablePatch) apply(t *Trackable) {
	if p.OccurredAt != nil {
		t.OccurredAt = *p.OccurredAt
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Attachments != nil {
		t.Attachments = *p.Attachments
	}
}
