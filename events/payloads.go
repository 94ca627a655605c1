package events

import "BabyTracker/models"

// FamilyScope is implemented by every payload routed to a family room.
type FamilyScope interface {
	TargetFamily() uint
}

type FamilyPayload struct {
	Family *models.Family `json:"family"`
	UserID uint           `json:"userId"`
}

func (p FamilyPayload) TargetFamily() uint {
	if p.Family == nil {
		return 0
	}
	return p.Family.ID
}

type MemberPayload struct {
	FamilyID   uint               `json:"familyId"`
	Membership *models.UserFamily `json:"membership"`
	UserID     uint               `json:"userId"`
}

func (p MemberPayload) TargetFamily() uint { return p.FamilyID }

type ChildPayload struct {
	Child  *models.Child `json:"child"`
	UserID uint          `json:"userId"`
}

func (p ChildPayload) TargetFamily() uint {
	if p.Child == nil {
		return 0
	}
	return p.Child.FamilyID
}

type TrackablePayload struct {
	Kind      string `json:"kind"`
	Trackable any    `json:"trackable"`
	UserID    uint   `json:"userId"`
	FamilyID  uint   `json:"familyId"`
}

func (p TrackablePayload) TargetFamily() uint { return p.FamilyID }

type TrackableDeletedPayload struct {
	Kind        string `json:"kind"`
	TrackableID uint   `json:"trackableId"`
	ChildID     uint   `json:"childId"`
	UserID      uint   `json:"userId"`
	FamilyID    uint   `json:"familyId"`
}

func (p TrackableDeletedPayload) TargetFamily() uint { return p.FamilyID }

type EventPayload struct {
	Event     *models.Event     `json:"event"`
	Milestone *models.Milestone `json:"milestone,omitempty"`
	UserID    uint              `json:"userId"`
	FamilyID  uint              `json:"familyId"`
}

func (p EventPayload) TargetFamily() uint { return p.FamilyID }

type EventDeletedPayload struct {
	EventID  uint   `json:"eventId"`
	ChildID  uint   `json:"childId"`
	Type     string `json:"type"`
	UserID   uint   `json:"userId"`
	FamilyID uint   `json:"familyId"`
}

func (p EventDeletedPayload) TargetFamily() uint { return p.FamilyID }

type NotificationPayload struct {
	Notification *models.Notification `json:"notification"`
}
