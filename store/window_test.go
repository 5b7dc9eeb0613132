package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func newTestStore(window int) (*Store[[]string], *MemoryBackend[[]string]) {
	backend := NewMemoryBackend[[]string]()
	merge := func(existing, incoming []string) []string {
		return append(existing, incoming...)
	}
	return New(backend, window, merge), backend
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s, _ := newTestStore(6)
	ctx := context.Background()

	first, err := s.GetOrCreate(ctx, "user1")
	if err != nil {
		t.Fatalf("first GetOrCreate failed: %v", err)
	}
	second, err := s.GetOrCreate(ctx, "user1")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if first.UserID != second.UserID {
		t.Errorf("expected same document identity, got %q and %q", first.UserID, second.UserID)
	}
	if len(second.Days) != 0 {
		t.Errorf("expected empty document on second fetch, got %d days", len(second.Days))
	}
}

func TestGetOrCreateLosesInsertRaceGracefully(t *testing.T) {
	s, backend := newTestStore(6)
	ctx := context.Background()

	// Simulate a concurrent creator that already inserted.
	winner := &ActiveDoc[[]string]{UserID: "user1", Days: []Day[[]string]{
		{Date: day(1), Payload: []string{"existing"}},
	}}
	if err := backend.InsertActive(ctx, winner); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	doc, err := s.GetOrCreate(ctx, "user1")
	if err != nil {
		t.Fatalf("GetOrCreate after race failed: %v", err)
	}
	if len(doc.Days) != 1 || doc.Days[0].Payload[0] != "existing" {
		t.Errorf("expected winner's document to be re-fetched, got %+v", doc.Days)
	}
}

func TestWindowBoundNeverExceeded(t *testing.T) {
	const window = 6
	s, _ := newTestStore(window)
	ctx := context.Background()

	for n := 1; n <= 20; n++ {
		if err := s.UpsertDay(ctx, "user1", day(n), []string{"entry"}); err != nil {
			t.Fatalf("UpsertDay %d failed: %v", n, err)
		}
		doc, err := s.GetOrCreate(ctx, "user1")
		if err != nil {
			t.Fatalf("GetOrCreate failed: %v", err)
		}
		if len(doc.Days) > window {
			t.Fatalf("window holds %d days after insert %d, bound is %d", len(doc.Days), n, window)
		}
	}
}

func TestSeventhDayArchivesOldest(t *testing.T) {
	// Diet semantics: W=6, inserting D1..D6 archives nothing, D7 evicts D1.
	s, _ := newTestStore(6)
	ctx := context.Background()

	for n := 1; n <= 6; n++ {
		if err := s.UpsertDay(ctx, "user1", day(n), []string{"meal"}); err != nil {
			t.Fatalf("UpsertDay %d failed: %v", n, err)
		}
	}
	hist, err := s.History(ctx, "user1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(hist.Days) != 0 {
		t.Fatalf("expected no archival before overflow, history has %d days", len(hist.Days))
	}

	if err := s.UpsertDay(ctx, "user1", day(7), []string{"meal"}); err != nil {
		t.Fatalf("UpsertDay 7 failed: %v", err)
	}

	hist, err = s.History(ctx, "user1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(hist.Days) != 1 || !hist.Days[0].Date.Equal(day(1)) {
		t.Fatalf("expected history to contain exactly D1, got %+v", hist.Days)
	}

	doc, _ := s.GetOrCreate(ctx, "user1")
	if len(doc.Days) != 6 {
		t.Fatalf("expected active window of 6 days, got %d", len(doc.Days))
	}
	for _, d := range doc.Days {
		if d.Date.Equal(day(1)) {
			t.Errorf("evicted day D1 still present in active window")
		}
	}
}

func TestArchiveCompleteness(t *testing.T) {
	s, _ := newTestStore(3)
	ctx := context.Background()

	payloads := map[string][]string{}
	for n := 1; n <= 10; n++ {
		p := []string{time.Date(2025, 3, n, 0, 0, 0, 0, time.UTC).Format("2006-01-02")}
		payloads[day(n).Format("2006-01-02")] = p
		if err := s.UpsertDay(ctx, "user1", day(n), p); err != nil {
			t.Fatalf("UpsertDay %d failed: %v", n, err)
		}
	}

	hist, err := s.History(ctx, "user1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(hist.Days) != 7 {
		t.Fatalf("expected 7 archived days, got %d", len(hist.Days))
	}
	seen := map[string]int{}
	for _, d := range hist.Days {
		key := d.Date.Format("2006-01-02")
		seen[key]++
		want := payloads[key]
		if len(d.Payload) != len(want) || d.Payload[0] != want[0] {
			t.Errorf("archived payload for %s changed: got %v want %v", key, d.Payload, want)
		}
	}
	for key, count := range seen {
		if count != 1 {
			t.Errorf("day %s archived %d times, expected exactly once", key, count)
		}
	}
}

func TestUpsertMergesExistingDay(t *testing.T) {
	s, _ := newTestStore(6)
	ctx := context.Background()

	if err := s.UpsertDay(ctx, "user1", day(1), []string{"breakfast"}); err != nil {
		t.Fatalf("UpsertDay failed: %v", err)
	}
	if err := s.UpsertDay(ctx, "user1", day(1), []string{"lunch"}); err != nil {
		t.Fatalf("second UpsertDay failed: %v", err)
	}

	d, ok, err := s.Day(ctx, "user1", day(1))
	if err != nil || !ok {
		t.Fatalf("Day lookup failed: ok=%v err=%v", ok, err)
	}
	if len(d.Payload) != 2 || d.Payload[0] != "breakfast" || d.Payload[1] != "lunch" {
		t.Errorf("expected merged payload [breakfast lunch], got %v", d.Payload)
	}

	doc, _ := s.GetOrCreate(ctx, "user1")
	if len(doc.Days) != 1 {
		t.Errorf("merge created a duplicate day entry: %d entries", len(doc.Days))
	}
}

func TestEvictionTieBreakIsStable(t *testing.T) {
	s, _ := newTestStore(2)
	ctx := context.Background()

	// Two days, then overflow: the lower date goes first.
	if err := s.UpsertDay(ctx, "user1", day(5), []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertDay(ctx, "user1", day(2), []string{"b"}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertDay(ctx, "user1", day(9), []string{"c"}); err != nil {
		t.Fatal(err)
	}

	hist, _ := s.History(ctx, "user1")
	if len(hist.Days) != 1 || !hist.Days[0].Date.Equal(day(2)) {
		t.Fatalf("expected D2 (minimum date) evicted first, got %+v", hist.Days)
	}
}

func TestRemoveDayAbsentReportsNotFound(t *testing.T) {
	s, _ := newTestStore(6)
	ctx := context.Background()

	err := s.RemoveDay(ctx, "user1", day(3))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for absent day, got %v", err)
	}
}

func TestArchiveHookFailureAbortsEviction(t *testing.T) {
	s, _ := newTestStore(1)
	ctx := context.Background()

	hookErr := errors.New("index write failed")
	s.SetArchiveHook(func(ctx context.Context, userID string, d Day[[]string]) error {
		return hookErr
	})

	if err := s.UpsertDay(ctx, "user1", day(1), []string{"a"}); err != nil {
		t.Fatal(err)
	}
	err := s.UpsertDay(ctx, "user1", day(2), []string{"b"})
	if !errors.Is(err, hookErr) {
		t.Fatalf("expected hook error to surface, got %v", err)
	}

	// Failed archive must leave history empty and the window untouched.
	hist, _ := s.History(ctx, "user1")
	if len(hist.Days) != 0 {
		t.Errorf("hook failure left a partial history write: %+v", hist.Days)
	}
	doc, _ := s.GetOrCreate(ctx, "user1")
	if len(doc.Days) != 1 || !doc.Days[0].Date.Equal(day(1)) {
		t.Errorf("hook failure disturbed the active window: %+v", doc.Days)
	}
}

// contendedBackend loses its first eviction to a simulated concurrent writer
// that bumps the active document's version underneath the caller.
type contendedBackend struct {
	*MemoryBackend[[]string]
	raced bool
}

func (b *contendedBackend) EvictAndReplace(ctx context.Context, doc *ActiveDoc[[]string], evicted Day[[]string], hook ArchiveHook[[]string]) error {
	if !b.raced {
		b.raced = true
		other, err := b.MemoryBackend.FindActive(ctx, doc.UserID)
		if err != nil {
			return err
		}
		if err := b.MemoryBackend.ReplaceActive(ctx, other); err != nil {
			return err
		}
	}
	return b.MemoryBackend.EvictAndReplace(ctx, doc, evicted, hook)
}

func TestStaleEvictionArchivesExactlyOnce(t *testing.T) {
	backend := &contendedBackend{MemoryBackend: NewMemoryBackend[[]string]()}
	merge := func(existing, incoming []string) []string {
		return append(existing, incoming...)
	}
	s := New[[]string](backend, 1, merge)
	ctx := context.Background()

	if err := s.UpsertDay(ctx, "user1", day(1), []string{"a"}); err != nil {
		t.Fatal(err)
	}

	// First overflow loses the replace race; nothing may reach history.
	err := s.UpsertDay(ctx, "user1", day(2), []string{"b"})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale on contended eviction, got %v", err)
	}
	hist, err := s.History(ctx, "user1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist.Days) != 0 {
		t.Fatalf("stale eviction wrote history anyway: %+v", hist.Days)
	}

	// The retry wins and archives D1 exactly once.
	if err := s.UpsertDay(ctx, "user1", day(2), []string{"b"}); err != nil {
		t.Fatalf("retry after stale eviction failed: %v", err)
	}
	hist, err = s.History(ctx, "user1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist.Days) != 1 || !hist.Days[0].Date.Equal(day(1)) {
		t.Fatalf("expected exactly one archived D1, got %+v", hist.Days)
	}
}

func TestStaleReplaceSurfacesError(t *testing.T) {
	s, backend := newTestStore(6)
	ctx := context.Background()

	doc, err := s.GetOrCreate(ctx, "user1")
	if err != nil {
		t.Fatal(err)
	}

	// Another writer bumps the version underneath us.
	other, _ := backend.FindActive(ctx, "user1")
	other.Days = append(other.Days, Day[[]string]{Date: day(1), Payload: []string{"x"}})
	if err := backend.ReplaceActive(ctx, other); err != nil {
		t.Fatal(err)
	}

	doc.Days = append(doc.Days, Day[[]string]{Date: day(2), Payload: []string{"y"}})
	err = backend.ReplaceActive(ctx, doc)
	if !errors.Is(err, ErrStale) {
		t.Errorf("expected ErrStale on lost update, got %v", err)
	}
}
