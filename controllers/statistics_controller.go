package controllers

import (
	"net/http"
	"time"

	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/status"
	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

// GetStatisticsHandler returns the user's full statistics document
func GetStatisticsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, res := statisticsService.Document(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": doc})
}

// RecordStatisticHandler logs a measurement directly, for axes no domain log
// feeds (steps, weight, time spent). Cumulative types accumulate into the
// all-time counter; point-in-time types only raise it.
func RecordStatisticHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.RecordStatisticRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	statType, err := models.ParseStatisticType(request.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := parseDate(c, request.Date)
	if !ok {
		return
	}

	rec := models.StatisticRecord{Date: date, Value: request.Value, DurationSec: request.DurationSec}
	var res status.Result
	if statType.Cumulative() {
		res = statisticsService.Accumulate(c.Request.Context(), userID, statType, rec)
	} else {
		res = statisticsService.ReplaceIfGreater(c.Request.Context(), userID, statType, rec)
	}
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Statistic recorded"})
}

// GetStatisticWindowHandler aggregates one statistic type over a time window
func GetStatisticWindowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statType, err := models.ParseStatisticType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := leaderboard.ParseTimeWindow(c.DefaultQuery("window", "all-time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	cutoff, bounded := window.Cutoff(now)
	value, found, res := statisticsService.WindowValue(c.Request.Context(), userID, statType, cutoff, bounded)
	if !res.Success {
		fail(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":   statType,
		"window": window,
		"value":  value,
		"found":  found,
	})
}
