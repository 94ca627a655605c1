package controllers

import (
	"BabyTracker/models"
	"BabyTracker/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

var childService *services.ChildService

func SetChildService(service *services.ChildService) {
	childService = service
}

func CreateChild(c *gin.Context) {
	familyID, ok := paramID(c, "familyId")
	if !ok {
		return
	}
	var input models.CreateChildRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	child, err := childService.CreateChild(c.Request.Context(), currentUserID(c), familyID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": child})
}

func ListFamilyChildren(c *gin.Context) {
	familyID, ok := paramID(c, "familyId")
	if !ok {
		return
	}

	children, err := childService.ListFamilyChildren(c.Request.Context(), currentUserID(c), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": children})
}

func GetChild(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}

	child, err := childService.GetChild(c.Request.Context(), currentUserID(c), childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": child})
}

func UpdateChild(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateChildRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	child, err := childService.UpdateChild(c.Request.Context(), currentUserID(c), childID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": child})
}

// UploadChildAvatar expects a multipart form with the image under "file".
func UploadChildAvatar(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	file, ok := uploadedFile(c)
	if !ok {
		return
	}

	child, err := childService.UploadAvatar(c.Request.Context(), currentUserID(c), childID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": child})
}

func GrantChildPermission(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.GrantPermissionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	grant, err := childService.GrantPermission(c.Request.Context(), currentUserID(c), childID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grant})
}

func RevokeChildPermission(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	if err := childService.RevokePermission(c.Request.Context(), currentUserID(c), childID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permission revoked"})
}

func GetChildStatistics(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}

	stats, err := childService.GetStatistics(c.Request.Context(), currentUserID(c), childID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
