package services

import (
	"context"
	"time"

	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/status"
	"fitlog/store"
)

// TrainingService owns per-user strength training days.
type TrainingService struct {
	store *store.Store[[]models.Exercise]
	stats *StatisticsService
}

func NewTrainingService(backend store.Backend[[]models.Exercise], window int, stats *StatisticsService) *TrainingService {
	s := store.New(backend, window, func(existing, incoming []models.Exercise) []models.Exercise {
		return append(existing, incoming...)
	})
	return &TrainingService{store: s, stats: stats}
}

// LogExercise records an exercise with its sets on day `date` and counts the
// session toward the user's statistics.
func (t *TrainingService) LogExercise(ctx context.Context, userID string, date time.Time, exercise models.Exercise) status.Result {
	if exercise.Name == "" {
		return status.Error(status.ModelStateNotValid, "exercise name is required")
	}
	if len(exercise.Sets) == 0 {
		return status.Error(status.ModelStateNotValid, "exercise needs at least one set")
	}

	if err := t.store.UpsertDay(ctx, userID, date, []models.Exercise{exercise}); err != nil {
		return failure(err)
	}

	if t.stats != nil {
		if res := t.stats.Accumulate(ctx, userID, models.StatSessionCount, models.StatisticRecord{
			Date: store.DayOf(date), Value: 1,
		}); !res.Success {
			return res
		}
	}
	return status.OK()
}

// Day returns the exercises logged for one active day.
func (t *TrainingService) Day(ctx context.Context, userID string, date time.Time) ([]models.Exercise, status.Result) {
	day, ok, err := t.store.Day(ctx, userID, date)
	if err != nil {
		return nil, failure(err)
	}
	if !ok {
		return nil, status.Error(status.NotFound, "no training entry for that day")
	}
	return day.Payload, status.OK()
}

// ActiveDays returns the user's current window.
func (t *TrainingService) ActiveDays(ctx context.Context, userID string) ([]store.Day[[]models.Exercise], status.Result) {
	doc, err := t.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, failure(err)
	}
	return doc.Days, status.OK()
}

// RemoveExercise deletes an exercise by name from one active day.
func (t *TrainingService) RemoveExercise(ctx context.Context, userID string, date time.Time, name string) status.Result {
	err := t.store.UpdateDay(ctx, userID, date, func(exercises []models.Exercise) ([]models.Exercise, error) {
		for i, e := range exercises {
			if e.Name == name {
				return append(exercises[:i], exercises[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// History returns the archived training days.
func (t *TrainingService) History(ctx context.Context, userID string) ([]store.Day[[]models.Exercise], status.Result) {
	hist, err := t.store.History(ctx, userID)
	if err != nil {
		return nil, failure(err)
	}
	return hist.Days, status.OK()
}

// BestLiftSource feeds the leaderboard engine: one user's heaviest set for
// the named exercise inside the window, reps breaking weight ties. Scans
// active and history days.
func (t *TrainingService) BestLiftSource(exercise string) leaderboard.SourceFunc {
	return func(ctx context.Context, userID string, window leaderboard.TimeWindow, now time.Time) (leaderboard.Record, bool, error) {
		days, err := t.store.AllDays(ctx, userID)
		if err != nil {
			return leaderboard.Record{}, false, err
		}
		var records []leaderboard.Record
		for _, day := range days {
			if !window.Contains(now, day.Date) {
				continue
			}
			for _, ex := range day.Payload {
				if ex.Name != exercise {
					continue
				}
				best, ok := ex.BestSet()
				if !ok {
					continue
				}
				records = append(records, leaderboard.Record{
					UserID: userID,
					Value:  best.WeightKg,
					Date:   day.Date,
					Detail: map[string]float64{"reps": float64(best.Reps)},
				})
			}
		}
		best, ok := leaderboard.BestOf(records, leaderboard.WeightThenReps)
		return best, ok, nil
	}
}
