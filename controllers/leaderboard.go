package controllers

import (
	"net/http"
	"time"

	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/services"

	"github.com/gin-gonic/gin"
)

func boardParams(c *gin.Context) (services.LeaderboardScope, leaderboard.TimeWindow, bool) {
	scope, err := services.ParseLeaderboardScope(c.DefaultQuery("scope", "friends"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	window, err := leaderboard.ParseTimeWindow(c.DefaultQuery("window", "week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	return scope, window, true
}

// GetStatLeaderboardHandler ranks users over one statistic type
func GetStatLeaderboardHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statType, err := models.ParseStatisticType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scope, window, ok := boardParams(c)
	if !ok {
		return
	}

	board, res := communityService.StatBoard(c.Request.Context(), userID, scope, statType, window, time.Now())
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

// GetCardioLeaderboardHandler ranks users by best speed for one activity
func GetCardioLeaderboardHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activity, err := models.ParseActivityType(c.Param("activity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scope, window, ok := boardParams(c)
	if !ok {
		return
	}

	board, res := communityService.CardioBoard(c.Request.Context(), userID, scope, activity, window, time.Now())
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

// GetLiftLeaderboardHandler ranks users by heaviest set for one exercise
func GetLiftLeaderboardHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercise := c.Param("exercise")
	if exercise == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exercise name is required"})
		return
	}
	scope, window, ok := boardParams(c)
	if !ok {
		return
	}

	board, res := communityService.LiftBoard(c.Request.Context(), userID, scope, exercise, window, time.Now())
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}
