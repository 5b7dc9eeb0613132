package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAchievementsHandler lists all achievement definitions
func GetAchievementsHandler(c *gin.Context) {
	defs, res := achievementService.Definitions()
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": defs})
}

// GetAchievementProgressHandler lists the user's progress counters
func GetAchievementProgressHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, res := achievementService.Progress(userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": entries})
}
