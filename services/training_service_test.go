package services

import (
	"context"
	"testing"

	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/status"
	"fitlog/store"
)

func newTrainingFixture(window int) (*TrainingService, *StatisticsService) {
	stats := NewStatisticsService(NewMemoryStatsBackend())
	training := NewTrainingService(store.NewMemoryBackend[[]models.Exercise](), window, stats)
	return training, stats
}

func TestLogExerciseValidatesInput(t *testing.T) {
	ctx := context.Background()
	training, _ := newTrainingFixture(7)

	res := training.LogExercise(ctx, "u1", day(0), models.Exercise{Name: ""})
	if res.Success || res.Code != status.ModelStateNotValid {
		t.Errorf("expected validation failure for empty name, got %+v", res)
	}

	res = training.LogExercise(ctx, "u1", day(0), models.Exercise{Name: "squat"})
	if res.Success || res.Code != status.ModelStateNotValid {
		t.Errorf("expected validation failure for no sets, got %+v", res)
	}
}

func TestLogExerciseCountsSession(t *testing.T) {
	ctx := context.Background()
	training, stats := newTrainingFixture(7)

	res := training.LogExercise(ctx, "u1", day(0), models.Exercise{
		Name: "squat",
		Sets: []models.ExerciseSet{{WeightKg: 100, Reps: 5}},
	})
	if !res.Success {
		t.Fatalf("LogExercise failed: %v", res.Message)
	}

	doc, sres := stats.Document(ctx, "u1")
	if !sres.Success {
		t.Fatalf("Document failed: %v", sres.Message)
	}
	if got := doc.Total(models.StatSessionCount).Value; got != 1 {
		t.Errorf("expected session counter 1, got %v", got)
	}
}

func TestRemoveExerciseByName(t *testing.T) {
	ctx := context.Background()
	training, _ := newTrainingFixture(7)

	training.LogExercise(ctx, "u1", day(0), models.Exercise{
		Name: "squat", Sets: []models.ExerciseSet{{WeightKg: 100, Reps: 5}},
	})
	training.LogExercise(ctx, "u1", day(0), models.Exercise{
		Name: "bench", Sets: []models.ExerciseSet{{WeightKg: 80, Reps: 8}},
	})

	if res := training.RemoveExercise(ctx, "u1", day(0), "squat"); !res.Success {
		t.Fatalf("RemoveExercise failed: %v", res.Message)
	}

	exercises, res := training.Day(ctx, "u1", day(0))
	if !res.Success {
		t.Fatalf("Day failed: %v", res.Message)
	}
	if len(exercises) != 1 || exercises[0].Name != "bench" {
		t.Errorf("expected only bench left, got %+v", exercises)
	}
}

func TestBestLiftSourceBreaksWeightTiesOnReps(t *testing.T) {
	ctx := context.Background()
	training, _ := newTrainingFixture(7)

	training.LogExercise(ctx, "u1", day(0), models.Exercise{
		Name: "deadlift",
		Sets: []models.ExerciseSet{{WeightKg: 140, Reps: 3}, {WeightKg: 140, Reps: 5}},
	})
	training.LogExercise(ctx, "u2", day(0), models.Exercise{
		Name: "deadlift",
		Sets: []models.ExerciseSet{{WeightKg: 140, Reps: 4}},
	})

	var engine leaderboard.Engine
	board, err := engine.Compute(ctx, "lift:deadlift", []string{"u1", "u2"},
		training.BestLiftSource("deadlift"), leaderboard.WeightThenReps, leaderboard.AllTime, day(1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(board.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board.Entries))
	}
	if board.Entries[0].UserID != "u1" {
		t.Errorf("expected u1 first on reps tiebreak, got %s", board.Entries[0].UserID)
	}
	if board.Entries[0].Rank != 1 || board.Entries[1].Rank != 2 {
		t.Errorf("expected dense ranks 1,2, got %d,%d", board.Entries[0].Rank, board.Entries[1].Rank)
	}
}
