package services

import (
	"context"
	"testing"

	"fitlog/models"
)

func TestGetOrCreateStatisticsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stats := NewStatisticsService(NewMemoryStatsBackend())

	first, res := stats.GetOrCreate(ctx, "u1")
	if !res.Success {
		t.Fatalf("GetOrCreate failed: %v", res.Message)
	}
	second, res := stats.GetOrCreate(ctx, "u1")
	if !res.Success {
		t.Fatalf("second GetOrCreate failed: %v", res.Message)
	}
	if first.UserID != second.UserID {
		t.Errorf("expected the same document back")
	}
}

func TestAccumulateKeepsCounterConsistentWithRecords(t *testing.T) {
	ctx := context.Background()
	stats := NewStatisticsService(NewMemoryStatsBackend())

	values := []float64{350, 150, 500}
	for i, v := range values {
		res := stats.Accumulate(ctx, "u1", models.StatCalories, models.StatisticRecord{Date: day(i), Value: v})
		if !res.Success {
			t.Fatalf("Accumulate failed: %v", res.Message)
		}
	}

	doc, res := stats.Document(ctx, "u1")
	if !res.Success {
		t.Fatalf("Document failed: %v", res.Message)
	}

	var recorded float64
	for _, rec := range doc.Group(models.StatCalories).Records {
		recorded += rec.Value
	}
	total := doc.Total(models.StatCalories).Value
	if total != 1000 || recorded != total {
		t.Errorf("counter %v diverged from record sum %v", total, recorded)
	}
}

func TestReplaceIfGreaterKeepsBest(t *testing.T) {
	ctx := context.Background()
	stats := NewStatisticsService(NewMemoryStatsBackend())

	for i, v := range []float64{80, 100, 90} {
		res := stats.ReplaceIfGreater(ctx, "u1", models.StatWeight, models.StatisticRecord{Date: day(i), Value: v})
		if !res.Success {
			t.Fatalf("ReplaceIfGreater failed: %v", res.Message)
		}
	}

	doc, res := stats.Document(ctx, "u1")
	if !res.Success {
		t.Fatalf("Document failed: %v", res.Message)
	}
	if got := doc.Total(models.StatWeight).Value; got != 100 {
		t.Errorf("expected best 100, got %v", got)
	}
	if got := len(doc.Group(models.StatWeight).Records); got != 3 {
		t.Errorf("expected all 3 records kept, got %d", got)
	}
}

func TestWindowValueAllTimeReadsCounter(t *testing.T) {
	ctx := context.Background()
	stats := NewStatisticsService(NewMemoryStatsBackend())

	stats.Accumulate(ctx, "u1", models.StatDistance, models.StatisticRecord{Date: day(0), Value: 5})
	stats.Accumulate(ctx, "u1", models.StatDistance, models.StatisticRecord{Date: day(1), Value: 7})

	value, found, res := stats.WindowValue(ctx, "u1", models.StatDistance, day(0), false)
	if !res.Success || !found {
		t.Fatalf("WindowValue failed: %+v found=%v", res, found)
	}
	if value != 12 {
		t.Errorf("expected all-time counter 12, got %v", value)
	}
}

func TestWindowValueBoundedFiltersByCutoff(t *testing.T) {
	ctx := context.Background()
	stats := NewStatisticsService(NewMemoryStatsBackend())

	stats.Accumulate(ctx, "u1", models.StatDistance, models.StatisticRecord{Date: day(0), Value: 5})
	stats.Accumulate(ctx, "u1", models.StatDistance, models.StatisticRecord{Date: day(10), Value: 7})

	value, found, res := stats.WindowValue(ctx, "u1", models.StatDistance, day(5), true)
	if !res.Success || !found {
		t.Fatalf("WindowValue failed: %+v found=%v", res, found)
	}
	if value != 7 {
		t.Errorf("expected only records on or after cutoff, got %v", value)
	}

	_, found, res = stats.WindowValue(ctx, "u1", models.StatDistance, day(20), true)
	if !res.Success {
		t.Fatalf("WindowValue failed: %v", res.Message)
	}
	if found {
		t.Errorf("expected no qualifying record past the last date")
	}
}

func TestWindowValueNoRecordsContributesNothing(t *testing.T) {
	ctx := context.Background()
	stats := NewStatisticsService(NewMemoryStatsBackend())

	_, found, res := stats.WindowValue(ctx, "u1", models.StatSteps, day(0), false)
	if !res.Success {
		t.Fatalf("WindowValue failed: %v", res.Message)
	}
	if found {
		t.Errorf("user without records must not contribute an entry")
	}
}
