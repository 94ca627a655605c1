package models

import (
	"encoding/json"
	"time"
)

const (
	ChildStatusActive   = "active"
	ChildStatusInactive = "inactive"

	PermissionRead  = "read"
	PermissionWrite = "write"
)

// Child belongs to exactly one family. FamilyID is always populated so callers
// never depend on the Family relation being preloaded.
type Child struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FamilyID      uint      `json:"familyId" gorm:"not null;index"`
	FirstName     string    `json:"firstName" gorm:"not null"`
	LastName      string    `json:"lastName"`
	BirthDate     time.Time `json:"birthDate"`
	Gender        string    `json:"gender" gorm:"size:16"`
	Avatar        string    `json:"avatar"`
	BirthWeightKg *float64  `json:"birthWeightKg"`
	BirthHeightCm *float64  `json:"birthHeightCm"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Family *Family `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
}

func (c *Child) IsActive() bool {
	return c.Status != ChildStatusInactive
}

// MarshalJSON exposes isActive as a view over Status.
func (c Child) MarshalJSON() ([]byte, error) {
	type alias Child
	return json.Marshal(struct {
		alias
		IsActive bool `json:"isActive"`
	}{alias(c), c.IsActive()})
}

// UserChild grants a user direct access to a child, independent of family role.
type UserChild struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;uniqueIndex:uidx_user_child"`
	ChildID    uint      `json:"childId" gorm:"not null;uniqueIndex:uidx_user_child;index"`
	Permission string    `json:"permission" gorm:"size:8;not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateChildRequest struct {
	FirstName     string    `json:"firstName" binding:"required"`
	LastName      string    `json:"lastName"`
	BirthDate     *DateOnly `json:"birthDate" binding:"required"`
	Gender        string    `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthWeightKg *float64  `json:"birthWeightKg" binding:"omitempty,gt=0"`
	BirthHeightCm *float64  `json:"birthHeightCm" binding:"omitempty,gt=0"`
	Notes         string    `json:"notes"`
}

// UpdateChildRequest accepts either status or the legacy isActive flag; status wins.
type UpdateChildRequest struct {
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	BirthDate     *DateOnly `json:"birthDate"`
	Gender        *string   `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthWeightKg *float64  `json:"birthWeightKg" binding:"omitempty,gt=0"`
	BirthHeightCm *float64  `json:"birthHeightCm" binding:"omitempty,gt=0"`
	Notes         *string   `json:"notes"`
	Status        *string   `json:"status" binding:"omitempty,oneof=active inactive"`
	IsActive      *bool     `json:"isActive"`
}

func (r *UpdateChildRequest) Apply(c *Child) {
	if r.FirstName != nil {
		c.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		c.LastName = *r.LastName
	}
	if r.BirthDate != nil {
		c.BirthDate = r.BirthDate.Time
	}
	if r.Gender != nil {
		c.Gender = *r.Gender
	}
	if r.BirthWeightKg != nil {
		c.BirthWeightKg = r.BirthWeightKg
	}
	if r.BirthHeightCm != nil {
		c.BirthHeightCm = r.BirthHeightCm
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
	switch {
	case r.Status != nil:
		c.Status = *r.Status
	case r.IsActive != nil && *r.IsActive:
		c.Status = ChildStatusActive
	case r.IsActive != nil:
		c.Status = ChildStatusInactive
	}
}

type GrantPermissionRequest struct {
	UserID     uint   `json:"userId" binding:"required"`
	Permission string `json:"permission" binding:"required,oneof=read write"`
}

type ChildStatistics struct {
	ChildID     uint           `json:"childId"`
	AgeInDays   int            `json:"ageInDays"`
	AgeInMonths int            `json:"ageInMonths"`
	AgeDisplay  string         `json:"ageDisplay"`
	Today       map[string]int `json:"today"`
}
