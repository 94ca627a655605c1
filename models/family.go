package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin     = "admin"
	RoleParent    = "parent"
	RoleCaregiver = "caregiver"
	RoleViewer    = "viewer"
)

// WriterRoles may record trackables and events without a direct grant.
var WriterRoles = []string{RoleAdmin, RoleParent, RoleCaregiver}

// ManagerRoles may manage members, invitations and children.
var ManagerRoles = []string{RoleAdmin, RoleParent}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleParent, RoleCaregiver, RoleViewer:
		return true
	}
	return false
}

type Family struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null"`
	InviteCode string         `json:"inviteCode" gorm:"size:16;uniqueIndex;not null"`
	Settings   datatypes.JSON `json:"settings"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	Members  []UserFamily `json:"members,omitempty" gorm:"foreignKey:FamilyID"`
	Children []Child      `json:"children,omitempty" gorm:"foreignKey:FamilyID"`
}

// UserFamily is a membership. Rows are never hard-deleted: leaving sets LeftAt.
type UserFamily struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:uidx_user_family"`
	FamilyID  uint       `json:"familyId" gorm:"not null;uniqueIndex:uidx_user_family;index"`
	Role      string     `json:"role" gorm:"size:16;not null"`
	IsPrimary bool       `json:"isPrimary" gorm:"not null;default:false"`
	JoinedAt  time.Time  `json:"joinedAt"`
	LeftAt    *time.Time `json:"leftAt"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Family *Family `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
}

func (m *UserFamily) IsActive() bool {
	return m.LeftAt == nil
}

func (m *UserFamily) HasRole(roles ...string) bool {
	for _, r := range roles {
		if m.Role == r {
			return true
		}
	}
	return false
}

type CreateFamilyRequest struct {
	Name     string         `json:"name" binding:"required,max=120"`
	Settings datatypes.JSON `json:"settings"`
}

type UpdateFamilyRequest struct {
	Name     *string        `json:"name" binding:"omitempty,max=120"`
	Settings datatypes.JSON `json:"settings"`
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=admin parent caregiver viewer"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,oneof=admin parent caregiver viewer"`
}
