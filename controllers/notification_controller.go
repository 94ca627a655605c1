package controllers

import (
	"BabyTracker/models"
	"BabyTracker/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var notificationService *services.NotificationService

func SetNotificationService(service *services.NotificationService) {
	notificationService = service
}

// ListNotifications supports ?unread=true and ?limit=N.
func ListNotifications(c *gin.Context) {
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := notificationService.List(c.Request.Context(), currentUserID(c), unreadOnly, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func UnreadNotificationCount(c *gin.Context) {
	count, err := notificationService.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": count}})
}

func MarkNotificationRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := notificationService.MarkRead(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": n})
}

func MarkAllNotificationsRead(c *gin.Context) {
	updated, err := notificationService.MarkAllRead(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": updated}})
}

func DeleteNotification(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := notificationService.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func ScheduleReminder(c *gin.Context) {
	var input models.ReminderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := notificationService.ScheduleReminder(c.Request.Context(), currentUserID(c), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Reminder scheduled"})
}
