package models

// ExerciseSet is one set of a strength exercise.
type ExerciseSet struct {
	WeightKg float64 `bson:"weightKg" json:"weightKg"`
	Reps     int     `bson:"reps" json:"reps"`
}

// Exercise is one logged strength exercise inside a training day.
type Exercise struct {
	Name string        `bson:"name" json:"name"`
	Sets []ExerciseSet `bson:"sets" json:"sets"`
}

// BestSet returns the heaviest set, breaking ties on reps.
func (e Exercise) BestSet() (ExerciseSet, bool) {
	if len(e.Sets) == 0 {
		return ExerciseSet{}, false
	}
	best := e.Sets[0]
	for _, s := range e.Sets[1:] {
		if s.WeightKg > best.WeightKg || (s.WeightKg == best.WeightKg && s.Reps > best.Reps) {
			best = s
		}
	}
	return best, true
}
