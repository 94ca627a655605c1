package controllers

import (
	"BabyTracker/models"
	"BabyTracker/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

var familyService *services.FamilyService

func SetFamilyService(service *services.FamilyService) {
	familyService = service
}

func CreateFamily(c *gin.Context) {
	var input models.CreateFamilyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	family, err := familyService.CreateFamily(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": family})
}

func ListFamilies(c *gin.Context) {
	families, err := familyService.ListFamilies(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": families})
}

func GetFamily(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	family, err := familyService.GetFamily(c.Request.Context(), currentUserID(c), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": family})
}

func UpdateFamily(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateFamilyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	family, err := familyService.UpdateFamily(c.Request.Context(), currentUserID(c), familyID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": family})
}

func RegenerateInviteCode(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	family, err := familyService.RegenerateInviteCode(c.Request.Context(), currentUserID(c), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"inviteCode": family.InviteCode}})
}

func InviteMember(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.InviteMemberRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	invitation, err := familyService.InviteMember(c.Request.Context(), currentUserID(c), familyID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": invitation})
}

func AcceptInvitation(c *gin.Context) {
	membership, err := familyService.AcceptInvitation(c.Request.Context(), currentUserID(c), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": membership})
}

func JoinFamily(c *gin.Context) {
	membership, err := familyService.JoinByCode(c.Request.Context(), currentUserID(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": membership})
}

// UpdateMember changes the role of the member whose user id is :memberId.
func UpdateMember(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "memberId")
	if !ok {
		return
	}
	var input models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	membership, err := familyService.UpdateMemberRole(c.Request.Context(), currentUserID(c), familyID, memberID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": membership})
}

func RemoveMember(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "memberId")
	if !ok {
		return
	}

	if err := familyService.RemoveMember(c.Request.Context(), currentUserID(c), familyID, memberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func LeaveFamily(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := familyService.LeaveFamily(c.Request.Context(), currentUserID(c), familyID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have left the family"})
}

func SetPrimaryFamily(c *gin.Context) {
	familyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	membership, err := familyService.SetPrimaryFamily(c.Request.Context(), currentUserID(c), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": membership})
}
