package models

import "time"

const InvitationTTL = 7 * 24 * time.Hour

type Invitation struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	FamilyID        uint       `json:"familyId" gorm:"not null;index"`
	Email           string     `json:"email" gorm:"size:255;not null;index"`
	Role            string     `json:"role" gorm:"size:16;not null"`
	Token           string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	InvitedByUserID uint       `json:"invitedByUserId"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	Accepted        bool       `json:"accepted" gorm:"not null;default:false"`
	AcceptedAt      *time.Time `json:"acceptedAt"`
	CreatedAt       time.Time  `json:"createdAt"`

	Family *Family `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invitation) IsPending(now time.Time) bool {
	return !i.Accepted && !i.IsExpired(now)
}

// Accept is the only place the accepted flag and its timestamp change.
func (i *Invitation) Accept(now time.Time) {
	i.Accepted = true
	i.AcceptedAt = &now
}
