package controllers

import (
	"BabyTracker/models"
	"BabyTracker/services"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var eventService *services.EventService

func SetEventService(service *services.EventService) {
	eventService = service
}

func CreateEvent(c *gin.Context) {
	var input models.CreateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	event, err := eventService.CreateEvent(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": event})
}

// ListChildEvents accepts an optional ?type= filter.
func ListChildEvents(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}

	events, err := eventService.ListEvents(c.Request.Context(), currentUserID(c), childID, strings.ToUpper(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

func GetEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	event, err := eventService.GetEvent(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": event})
}

func UpdateEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	event, err := eventService.UpdateEvent(c.Request.Context(), currentUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": event})
}

func DeleteEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := eventService.DeleteEvent(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

func ListMilestones(c *gin.Context) {
	milestones, err := eventService.ListMilestones(c.Request.Context(), strings.ToLower(c.Query("category")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": milestones})
}

func SuggestedMilestones(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}

	milestones, err := eventService.SuggestedMilestones(c.Request.Context(), currentUserID(c), childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": milestones})
}

func AchieveMilestone(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}
	var input models.AchieveMilestoneRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	event, err := eventService.AchieveMilestone(c.Request.Context(), currentUserID(c), childID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": event})
}

func AchievedMilestones(c *gin.Context) {
	childID, ok := paramID(c, "childId")
	if !ok {
		return
	}

	achieved, err := eventService.AchievedMilestones(c.Request.Context(), currentUserID(c), childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": achieved})
}

func RemoveMilestone(c *gin.Context) {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return
	}

	if err := eventService.RemoveMilestone(c.Request.Context(), currentUserID(c), eventID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone removed"})
}
