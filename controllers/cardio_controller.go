package controllers

import (
	"net/http"

	"fitlog/models"
	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

// LogCardioHandler records a cardio session on a day
func LogCardioHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.LogCardioRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	date, ok := parseDate(c, request.Date)
	if !ok {
		return
	}

	activity, err := models.ParseActivityType(request.Activity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := models.CardioSession{
		Activity:    activity,
		DistanceKm:  request.DistanceKm,
		DurationSec: request.DurationSec,
		SpeedKmh:    request.SpeedKmh,
	}
	if res := cardioService.LogSession(c.Request.Context(), userID, date, session); !res.Success {
		fail(c, res)
		return
	}

	countToward(userID, "cardio_sessions", date)
	c.JSON(http.StatusOK, gin.H{"message": "Session logged"})
}

// GetCardioDayHandler returns the sessions of one active day
func GetCardioDayHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	sessions, res := cardioService.Day(c.Request.Context(), userID, date)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "sessions": sessions})
}

// GetCardioDaysHandler returns the active cardio window
func GetCardioDaysHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, res := cardioService.ActiveDays(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// RemoveCardioDayHandler drops one day from the active window
func RemoveCardioDayHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	if res := cardioService.RemoveDay(c.Request.Context(), userID, date); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Day removed"})
}

// GetCardioHistoryHandler returns the archived cardio days
func GetCardioHistoryHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, res := cardioService.History(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetMostRecentActivityHandler returns the newest session of one activity
func GetMostRecentActivityHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activity, err := models.ParseActivityType(c.Param("activity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, res := cardioService.MostRecent(c.Request.Context(), userID, activity)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
