package models

import "time"

type User struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Email              string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash       string     `json:"-" gorm:"not null"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Locale             string     `json:"locale" gorm:"size:16;default:en"`
	Timezone           string     `json:"timezone" gorm:"size:64;default:UTC"`
	Avatar             string     `json:"avatar"`
	LastLoginAt        *time.Time `json:"lastLoginAt"`
	EmailNotifications bool       `json:"emailNotifications" gorm:"default:true"`
	DeviceToken        string     `json:"-"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	Families []UserFamily `json:"families,omitempty" gorm:"foreignKey:UserID"`
	Children []UserChild  `json:"children,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Locale    string `json:"locale"`
	Timezone  string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest leaves nil fields untouched.
type UpdateProfileRequest struct {
	Email              *string `json:"email" binding:"omitempty,email"`
	FirstName          *string `json:"firstName"`
	LastName           *string `json:"lastName"`
	Locale             *string `json:"locale"`
	Timezone           *string `json:"timezone"`
	Avatar             *string `json:"avatar"`
	EmailNotifications *bool   `json:"emailNotifications"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type DeviceTokenRequest struct {
	Token string `json:"token"`
}
