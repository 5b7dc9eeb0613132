package models

import (
	"fmt"
	"time"
)

// ActivityType is the closed set of cardio activities.
type ActivityType string

const (
	Running  ActivityType = "running"
	Cycling  ActivityType = "cycling"
	Swimming ActivityType = "swimming"
	Walking  ActivityType = "walking"
	Rowing   ActivityType = "rowing"
)

// ParseActivityType resolves a wire value into an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	switch ActivityType(s) {
	case Running, Cycling, Swimming, Walking, Rowing:
		return ActivityType(s), nil
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

// CardioSession is one logged cardio workout inside a cardio day.
type CardioSession struct {
	Activity    ActivityType `bson:"activity" json:"activity"`
	DistanceKm  float64      `bson:"distanceKm" json:"distanceKm"`
	DurationSec int64        `bson:"durationSec" json:"durationSec"`
	SpeedKmh    float64      `bson:"speedKmh" json:"speedKmh"`
}

// TimedSession pairs a session with the day it was logged on; the activity
// index stores these for "most recent activity of type X" reads.
type TimedSession struct {
	Date    time.Time     `bson:"date" json:"date"`
	Session CardioSession `bson:"session" json:"session"`
}

// ActivityGroup is the per-activity slice inside the cardio activity index.
type ActivityGroup struct {
	Activity ActivityType   `bson:"activity" json:"activity"`
	Sessions []TimedSession `bson:"sessions" json:"sessions"`
}

// CardioActivityIndex is the read-optimized secondary view over cardio
// history: flat per-activity record lists instead of day entries. It is only
// ever written together with the primary history archive.
type CardioActivityIndex struct {
	UserID string          `bson:"userId" json:"userId"`
	Groups []ActivityGroup `bson:"groups" json:"groups"`
}
