package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatisticType tags one statistics axis.
type StatisticType string

const (
	StatCalories     StatisticType = "calories"
	StatSteps        StatisticType = "steps"
	StatDistance     StatisticType = "distance"
	StatWeight       StatisticType = "weight"
	StatTimeSpent    StatisticType = "time-spent"
	StatSessionCount StatisticType = "session-count"
)

// ParseStatisticType resolves a wire value into a StatisticType.
func ParseStatisticType(s string) (StatisticType, error) {
	switch StatisticType(s) {
	case StatCalories, StatSteps, StatDistance, StatWeight, StatTimeSpent, StatSessionCount:
		return StatisticType(s), nil
	}
	return "", fmt.Errorf("unknown statistic type %q", s)
}

// Cumulative reports whether records of this type add up over time. Weight is
// a point-in-time measurement, everything else accumulates.
func (t StatisticType) Cumulative() bool {
	return t != StatWeight
}

// StatisticRecord is one dated measurement.
type StatisticRecord struct {
	Date        time.Time `bson:"date" json:"date"`
	Value       float64   `bson:"value" json:"value"`
	DurationSec int64     `bson:"durationSec,omitempty" json:"durationSec,omitempty"`
}

// StatisticGroup holds all records of one type.
type StatisticGroup struct {
	Type    StatisticType     `bson:"type" json:"type"`
	Records []StatisticRecord `bson:"records" json:"records"`
}

// StatisticTotal is the denormalized all-time counter for one type.
// Invariant: for cumulative types it equals the sum of the group's record
// values; for replace-if-greater types it equals the maximum.
type StatisticTotal struct {
	Type  StatisticType `bson:"type" json:"type"`
	Value float64       `bson:"value" json:"value"`
}

// StatisticsDocument is the per-user statistics store: one group per type
// plus running all-time counters.
type StatisticsDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  string             `bson:"userId" json:"userId"`
	Version int64              `bson:"version" json:"-"`
	Groups  []StatisticGroup   `bson:"groups" json:"groups"`
	Totals  []StatisticTotal   `bson:"totals" json:"totals"`
}

// Group returns the group for a type, appending an empty one if absent.
func (d *StatisticsDocument) Group(t StatisticType) *StatisticGroup {
	for i := range d.Groups {
		if d.Groups[i].Type == t {
			return &d.Groups[i]
		}
	}
	d.Groups = append(d.Groups, StatisticGroup{Type: t, Records: []StatisticRecord{}})
	return &d.Groups[len(d.Groups)-1]
}

// Total returns the all-time counter for a type, appending a zero one if
// absent.
func (d *StatisticsDocument) Total(t StatisticType) *StatisticTotal {
	for i := range d.Totals {
		if d.Totals[i].Type == t {
			return &d.Totals[i]
		}
	}
	d.Totals = append(d.Totals, StatisticTotal{Type: t})
	return &d.Totals[len(d.Totals)-1]
}
