package store

import (
	"context"
	"errors"
	"time"
)

// MergeFunc folds an incoming payload into the payload already stored for the
// same day. Each domain supplies its own append semantics (push a meal, push
// an exercise).
type MergeFunc[P any] func(existing, incoming P) P

// Store enforces the rolling window over one domain's per-user documents: at
// most `window` day entries stay active, the oldest day by date rolls off
// into history when a new day would exceed the bound. Eviction is strictly
// date-ordered, not least-recently-used; this is daily-planner semantics.
type Store[P any] struct {
	backend Backend[P]
	window  int
	merge   MergeFunc[P]
	hook    ArchiveHook[P]
}

// New creates a Store with the given window size and day-merge function.
func New[P any](backend Backend[P], window int, merge MergeFunc[P]) *Store[P] {
	return &Store[P]{backend: backend, window: window, merge: merge}
}

// SetArchiveHook installs a hook that runs with every archive write.
func (s *Store[P]) SetArchiveHook(hook ArchiveHook[P]) {
	s.hook = hook
}

// Window returns the configured window size.
func (s *Store[P]) Window() int {
	return s.window
}

// GetOrCreate fetches the user's active document, lazily creating an empty
// one on first access. A concurrent creator winning the insert race is not an
// error; the losing side re-fetches the winner's document.
func (s *Store[P]) GetOrCreate(ctx context.Context, userID string) (*ActiveDoc[P], error) {
	doc, err := s.backend.FindActive(ctx, userID)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	fresh := &ActiveDoc[P]{UserID: userID, Days: []Day[P]{}}
	err = s.backend.InsertActive(ctx, fresh)
	if err == nil {
		return fresh, nil
	}
	if errors.Is(err, ErrDuplicate) {
		return s.backend.FindActive(ctx, userID)
	}
	return nil, err
}

// UpsertDay inserts the payload into day `date`, merging into an existing
// entry, appending a new one while the window has room, or evicting the
// oldest day into history first when it does not.
func (s *Store[P]) UpsertDay(ctx context.Context, userID string, date time.Time, payload P) error {
	day := DayOf(date)

	doc, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	for i := range doc.Days {
		if doc.Days[i].Date.Equal(day) {
			doc.Days[i].Payload = s.merge(doc.Days[i].Payload, payload)
			return s.backend.ReplaceActive(ctx, doc)
		}
	}

	if len(doc.Days) >= s.window {
		idx := oldestIndex(doc.Days)
		evicted := doc.Days[idx]
		doc.Days = append(doc.Days[:idx], doc.Days[idx+1:]...)
		doc.Days = append(doc.Days, Day[P]{Date: day, Payload: payload})
		// Archive and replace commit together: a stale replace aborts the
		// archive, so a retry cannot land the evicted day in history twice.
		return s.backend.EvictAndReplace(ctx, doc, evicted, s.hook)
	}

	doc.Days = append(doc.Days, Day[P]{Date: day, Payload: payload})
	return s.backend.ReplaceActive(ctx, doc)
}

// Day returns the active entry for the given date, if present.
func (s *Store[P]) Day(ctx context.Context, userID string, date time.Time) (Day[P], bool, error) {
	day := DayOf(date)
	doc, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return Day[P]{}, false, err
	}
	for _, d := range doc.Days {
		if d.Date.Equal(day) {
			return d, true, nil
		}
	}
	return Day[P]{}, false, nil
}

// UpdateDay applies fn to the payload of an existing day and writes the
// result back. Absent days report ErrNotFound.
func (s *Store[P]) UpdateDay(ctx context.Context, userID string, date time.Time, fn func(P) (P, error)) error {
	day := DayOf(date)
	doc, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	for i := range doc.Days {
		if doc.Days[i].Date.Equal(day) {
			updated, err := fn(doc.Days[i].Payload)
			if err != nil {
				return err
			}
			doc.Days[i].Payload = updated
			return s.backend.ReplaceActive(ctx, doc)
		}
	}
	return ErrNotFound
}

// RemoveDay drops a day from the active window without archiving it.
func (s *Store[P]) RemoveDay(ctx context.Context, userID string, date time.Time) error {
	day := DayOf(date)
	doc, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	for i := range doc.Days {
		if doc.Days[i].Date.Equal(day) {
			doc.Days = append(doc.Days[:i], doc.Days[i+1:]...)
			return s.backend.ReplaceActive(ctx, doc)
		}
	}
	return ErrNotFound
}

// History returns the user's history document. Users with nothing archived
// yet get an empty document rather than ErrNotFound.
func (s *Store[P]) History(ctx context.Context, userID string) (*HistoryDoc[P], error) {
	doc, err := s.backend.FindHistory(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &HistoryDoc[P]{UserID: userID, Days: []Day[P]{}}, nil
	}
	return doc, err
}

// AllDays returns active plus archived days for aggregation reads, which
// bypass the window manager.
func (s *Store[P]) AllDays(ctx context.Context, userID string) ([]Day[P], error) {
	doc, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	hist, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	days := make([]Day[P], 0, len(doc.Days)+len(hist.Days))
	days = append(days, doc.Days...)
	days = append(days, hist.Days...)
	return days, nil
}

// oldestIndex picks the entry with the minimum date; ties resolve to the
// first occurrence so eviction order stays stable.
func oldestIndex[P any](days []Day[P]) int {
	idx := 0
	for i := 1; i < len(days); i++ {
		if days[i].Date.Before(days[idx].Date) {
			idx = i
		}
	}
	return idx
}
