package controllers

import (
	"BabyTracker/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

var mediaService *services.MediaService

func SetMediaService(service *services.MediaService) {
	mediaService = service
}

// UploadMedia stores the multipart "file" field under :type and returns an
// attachment that can be put on a trackable.
func UploadMedia(c *gin.Context) {
	file, ok := uploadedFile(c)
	if !ok {
		return
	}

	attachment, err := mediaService.Upload(c.Request.Context(), c.Param("type"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": attachment})
}
