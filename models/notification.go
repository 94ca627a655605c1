package models

import "time"

const (
	NotificationInfo       = "info"
	NotificationReminder   = "reminder"
	NotificationInvitation = "invitation"
	NotificationAlert      = "alert"
)

type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;index"`
	ChildID   *uint      `json:"childId"`
	Type      string     `json:"type" gorm:"size:16;not null"`
	Title     string     `json:"title"`
	Message   string     `json:"message" gorm:"not null"`
	IsRead    bool       `json:"isRead" gorm:"not null;default:false"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// MarkRead keeps IsRead and ReadAt in step.
func (n *Notification) MarkRead(now time.Time) {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.ReadAt = &now
}

type ReminderRequest struct {
	ChildID *uint  `json:"childId"`
	Message string `json:"message" binding:"required,max=500"`
}
