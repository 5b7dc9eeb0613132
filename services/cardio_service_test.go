package services

import (
	"context"
	"testing"

	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/status"
	"fitlog/store"
)

func newCardioFixture(window int) (*CardioService, *MemoryActivityIndex, *StatisticsService) {
	index := NewMemoryActivityIndex()
	stats := NewStatisticsService(NewMemoryStatsBackend())
	cardio := NewCardioService(store.NewMemoryBackend[[]models.CardioSession](), window, index, stats)
	return cardio, index, stats
}

func TestLogSessionDerivesSpeed(t *testing.T) {
	ctx := context.Background()
	cardio, _, _ := newCardioFixture(7)

	res := cardio.LogSession(ctx, "u1", day(0), models.CardioSession{
		Activity: models.Running, DistanceKm: 10, DurationSec: 3600,
	})
	if !res.Success {
		t.Fatalf("LogSession failed: %v", res.Message)
	}

	sessions, res := cardio.Day(ctx, "u1", day(0))
	if !res.Success {
		t.Fatalf("Day failed: %v", res.Message)
	}
	if sessions[0].SpeedKmh != 10 {
		t.Errorf("expected derived speed 10 km/h, got %v", sessions[0].SpeedKmh)
	}
}

func TestLogSessionUpdatesCounters(t *testing.T) {
	ctx := context.Background()
	cardio, _, stats := newCardioFixture(7)

	cardio.LogSession(ctx, "u1", day(0), models.CardioSession{Activity: models.Running, DistanceKm: 5, DurationSec: 1800})
	cardio.LogSession(ctx, "u1", day(1), models.CardioSession{Activity: models.Cycling, DistanceKm: 20, DurationSec: 3600})

	doc, res := stats.Document(ctx, "u1")
	if !res.Success {
		t.Fatalf("Document failed: %v", res.Message)
	}
	if got := doc.Total(models.StatDistance).Value; got != 25 {
		t.Errorf("expected distance counter 25, got %v", got)
	}
	if got := doc.Total(models.StatSessionCount).Value; got != 2 {
		t.Errorf("expected session counter 2, got %v", got)
	}
}

func TestArchiveFeedsActivityIndex(t *testing.T) {
	ctx := context.Background()
	cardio, index, _ := newCardioFixture(7)

	for i := 0; i < 8; i++ {
		res := cardio.LogSession(ctx, "u1", day(i), models.CardioSession{
			Activity: models.Running, DistanceKm: 5, DurationSec: 1800,
		})
		if !res.Success {
			t.Fatalf("LogSession day %d failed: %v", i, res.Message)
		}
	}

	idx, err := index.Find(ctx, "u1")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(idx.Groups) != 1 || idx.Groups[0].Activity != models.Running {
		t.Fatalf("expected one running group, got %+v", idx.Groups)
	}
	if len(idx.Groups[0].Sessions) != 1 || !idx.Groups[0].Sessions[0].Date.Equal(day(0)) {
		t.Errorf("expected archived day(0) session in index, got %+v", idx.Groups[0].Sessions)
	}
}

func TestMostRecentSpansActiveAndHistory(t *testing.T) {
	ctx := context.Background()
	cardio, _, _ := newCardioFixture(7)

	// Day 0 swims, later days run so the swim ends up archived.
	cardio.LogSession(ctx, "u1", day(0), models.CardioSession{Activity: models.Swimming, DistanceKm: 1, DurationSec: 1200})
	for i := 1; i < 9; i++ {
		cardio.LogSession(ctx, "u1", day(i), models.CardioSession{Activity: models.Running, DistanceKm: 5, DurationSec: 1800})
	}

	swim, res := cardio.MostRecent(ctx, "u1", models.Swimming)
	if !res.Success {
		t.Fatalf("MostRecent swim failed: %v", res.Message)
	}
	if !swim.Date.Equal(day(0)) {
		t.Errorf("expected archived swim from day(0), got %v", swim.Date)
	}

	run, res := cardio.MostRecent(ctx, "u1", models.Running)
	if !res.Success {
		t.Fatalf("MostRecent run failed: %v", res.Message)
	}
	if !run.Date.Equal(day(8)) {
		t.Errorf("expected newest run from day(8), got %v", run.Date)
	}

	_, res = cardio.MostRecent(ctx, "u1", models.Rowing)
	if res.Success || res.Code != status.NotFound {
		t.Errorf("expected NotFound for unlogged activity, got %+v", res)
	}
}

func TestBestSpeedBoardsSplitByActivity(t *testing.T) {
	ctx := context.Background()
	cardio, _, _ := newCardioFixture(7)

	cardio.LogSession(ctx, "u1", day(0), models.CardioSession{Activity: models.Running, DistanceKm: 12, DurationSec: 3600})
	cardio.LogSession(ctx, "u1", day(1), models.CardioSession{Activity: models.Swimming, DistanceKm: 3, DurationSec: 3600})

	var engine leaderboard.Engine
	now := day(2)

	running, err := engine.Compute(ctx, "cardio:running", []string{"u1"},
		cardio.BestSpeedSource(models.Running), leaderboard.ValueDesc, leaderboard.AllTime, now)
	if err != nil {
		t.Fatalf("Compute running failed: %v", err)
	}
	if len(running.Entries) != 1 || running.Entries[0].Value != 12 {
		t.Fatalf("expected single 12 km/h running entry, got %+v", running.Entries)
	}

	swimming, err := engine.Compute(ctx, "cardio:swimming", []string{"u1"},
		cardio.BestSpeedSource(models.Swimming), leaderboard.ValueDesc, leaderboard.AllTime, now)
	if err != nil {
		t.Fatalf("Compute swimming failed: %v", err)
	}
	if len(swimming.Entries) != 1 || swimming.Entries[0].Value != 3 {
		t.Fatalf("expected single 3 km/h swimming entry, got %+v", swimming.Entries)
	}
}
