package controllers

import (
	"BabyTracker/models"
	"BabyTracker/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

var authService *services.AuthService

func SetAuthService(service *services.AuthService) {
	authService = service
}

func Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	result, err := authService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	result, err := authService.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func GetProfile(c *gin.Context) {
	user, err := authService.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func UpdateProfile(c *gin.Context) {
	var input models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := authService.UpdateProfile(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func ChangePassword(c *gin.Context) {
	var input models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := authService.ChangePassword(c.Request.Context(), currentUserID(c), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// RegisterDeviceToken stores the FCM token of the caller's device. An empty
// token clears it.
func RegisterDeviceToken(c *gin.Context) {
	var input models.DeviceTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := authService.RegisterDeviceToken(c.Request.Context(), currentUserID(c), input.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token saved"})
}
