package controllers

import (
	"net/http"

	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

// GetProfileHandler returns the authenticated user's profile
func GetProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	account, res := accountService.Profile(userID)
	if !res.Success {
		fail(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             account.ID,
		"email":          account.Email,
		"displayName":    account.DisplayName,
		"bio":            account.Bio,
		"avatarUrl":      account.AvatarURL,
		"followerCount":  account.FollowerCount,
		"followingCount": account.FollowingCount,
	})
}

// UpdateProfileHandler changes the mutable profile fields
func UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	account, res := accountService.UpdateProfile(userID, request.DisplayName, request.Bio, request.AvatarURL)
	if !res.Success {
		fail(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "displayName": account.DisplayName})
}
