package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventFeeding     = "FEEDING"
	EventSleep       = "SLEEP"
	EventDiaper      = "DIAPER"
	EventMedication  = "MEDICATION"
	EventAppointment = "APPOINTMENT"
	EventActivity    = "ACTIVITY"
	EventNote        = "NOTE"
	EventMilestone   = "MILESTONE"
)

// Event is the generic activity log. The shape of Data depends on Type.
type Event struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ChildID         uint           `json:"childId" gorm:"not null;index"`
	CreatedByUserID uint           `json:"createdByUserId" gorm:"not null"`
	Type            string         `json:"type" gorm:"size:16;not null;index"`
	Title           string         `json:"title"`
	Data            datatypes.JSON `json:"data"`
	OccurredAt      time.Time      `json:"occurredAt" gorm:"not null;index"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

type CreateEventRequest struct {
	ChildID    uint           `json:"childId" binding:"required"`
	Type       string         `json:"type" binding:"required,oneof=FEEDING SLEEP DIAPER MEDICATION APPOINTMENT ACTIVITY NOTE"`
	Title      string         `json:"title"`
	Data       datatypes.JSON `json:"data"`
	OccurredAt *time.Time     `json:"occurredAt"`
}

type UpdateEventRequest struct {
	Title      *string        `json:"title"`
	Data       datatypes.JSON `json:"data"`
	OccurredAt *time.Time     `json:"occurredAt"`
}

func (r *UpdateEventRequest) Apply(e *Event) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Data != nil {
		e.Data = r.Data
	}
	if r.OccurredAt != nil {
		e.OccurredAt = *r.OccurredAt
	}
}
