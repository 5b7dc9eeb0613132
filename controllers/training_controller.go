package controllers

import (
	"net/http"

	"fitlog/models"
	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

// LogExerciseHandler records an exercise with its sets on a day
func LogExerciseHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.LogExerciseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	date, ok := parseDate(c, request.Date)
	if !ok {
		return
	}

	exercise := models.Exercise{Name: request.Name}
	for _, set := range request.Sets {
		exercise.Sets = append(exercise.Sets, models.ExerciseSet{Reps: set.Reps, WeightKg: set.WeightKg})
	}

	if res := trainingService.LogExercise(c.Request.Context(), userID, date, exercise); !res.Success {
		fail(c, res)
		return
	}

	countToward(userID, "training_sessions", date)
	c.JSON(http.StatusOK, gin.H{"message": "Exercise logged"})
}

// GetTrainingDayHandler returns the exercises of one active day
func GetTrainingDayHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	exercises, res := trainingService.Day(c.Request.Context(), userID, date)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "exercises": exercises})
}

// GetTrainingDaysHandler returns the active training window
func GetTrainingDaysHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, res := trainingService.ActiveDays(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// RemoveExerciseHandler deletes an exercise by name from one active day
func RemoveExerciseHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.RemoveExerciseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	date, ok := parseDate(c, request.Date)
	if !ok {
		return
	}

	if res := trainingService.RemoveExercise(c.Request.Context(), userID, date, request.Name); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise removed"})
}

// GetTrainingHistoryHandler returns the archived training days
func GetTrainingHistoryHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, res := trainingService.History(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
