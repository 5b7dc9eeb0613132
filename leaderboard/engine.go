package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// TimeWindow selects how far back an aggregation reaches.
type TimeWindow string

const (
	Week    TimeWindow = "week"
	Month   TimeWindow = "month"
	Year    TimeWindow = "year"
	AllTime TimeWindow = "all-time"
)

// ParseTimeWindow resolves the wire value once at the API boundary.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case Week, Month, Year, AllTime:
		return TimeWindow(s), nil
	}
	return "", fmt.Errorf("unknown time window %q", s)
}

// Cutoff returns the inclusive lower date bound for the window. AllTime has
// no bound.
func (w TimeWindow) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case Week:
		return now.AddDate(0, 0, -7), true
	case Month:
		return now.AddDate(0, -1, 0), true
	case Year:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// Contains reports whether a record date falls inside the window.
func (w TimeWindow) Contains(now, date time.Time) bool {
	cutoff, bounded := w.Cutoff(now)
	if !bounded {
		return true
	}
	return !date.Before(cutoff)
}

// Record is one user's best qualifying record for a metric and window.
// Detail carries domain extras (pace and distance for cardio, weight and
// reps for lifts).
type Record struct {
	UserID string             `json:"userId"`
	Value  float64            `json:"value"`
	Date   time.Time          `json:"date"`
	Detail map[string]float64 `json:"detail,omitempty"`
}

// Entry is a ranked record inside a computed board.
type Entry struct {
	Rank   int                `json:"rank"`
	UserID string             `json:"userId"`
	Value  float64            `json:"value"`
	Date   time.Time          `json:"date,omitempty"`
	Detail map[string]float64 `json:"detail,omitempty"`
}

// Board is the computed leaderboard for one metric and one time window.
// It is ephemeral: computed per request, never persisted.
type Board struct {
	Metric  string     `json:"metric"`
	Window  TimeWindow `json:"window"`
	Entries []Entry    `json:"entries"`
}

// Comparator reports whether a ranks ahead of b.
type Comparator func(a, b Record) bool

// ValueDesc ranks by raw value, highest first. Cardio best-speed boards use
// it with Value carrying km/h.
func ValueDesc(a, b Record) bool {
	return a.Value > b.Value
}

// WeightThenReps ranks lift records by weight, breaking ties on rep count.
func WeightThenReps(a, b Record) bool {
	if a.Value != b.Value {
		return a.Value > b.Value
	}
	return a.Detail["reps"] > b.Detail["reps"]
}

// Source yields at most one record per user per window: the user's best under
// the board's comparator, or nothing when no record qualifies. Users without
// a qualifying record contribute no entry, so ranks compress.
type Source interface {
	BestRecord(ctx context.Context, userID string, window TimeWindow, now time.Time) (Record, bool, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, userID string, window TimeWindow, now time.Time) (Record, bool, error)

func (f SourceFunc) BestRecord(ctx context.Context, userID string, window TimeWindow, now time.Time) (Record, bool, error) {
	return f(ctx, userID, window, now)
}

// Engine merges per-user records into ranked boards.
type Engine struct{}

// Compute fetches each scope member's best record concurrently, joins after
// every branch finishes, and ranks the survivors. Any sub-fetch failure fails
// the whole call with the first error in scope order; sibling fetches still
// run to completion, their results are discarded on join.
func (e *Engine) Compute(ctx context.Context, metric string, scope []string, src Source, cmp Comparator, window TimeWindow, now time.Time) (Board, error) {
	type fetch struct {
		rec Record
		ok  bool
		err error
	}
	results := make([]fetch, len(scope))

	done := make(chan int, len(scope))
	for i, userID := range scope {
		go func(i int, userID string) {
			rec, ok, err := src.BestRecord(ctx, userID, window, now)
			results[i] = fetch{rec: rec, ok: ok, err: err}
			done <- i
		}(i, userID)
	}
	for range scope {
		<-done
	}

	for _, r := range results {
		if r.err != nil {
			return Board{}, r.err
		}
	}

	records := make([]Record, 0, len(scope))
	for _, r := range results {
		if r.ok {
			records = append(records, r.rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return cmp(records[i], records[j])
	})

	board := Board{Metric: metric, Window: window, Entries: make([]Entry, 0, len(records))}
	for i, rec := range records {
		board.Entries = append(board.Entries, Entry{
			Rank:   i + 1,
			UserID: rec.UserID,
			Value:  rec.Value,
			Date:   rec.Date,
			Detail: rec.Detail,
		})
	}
	return board, nil
}

// BestOf picks the winning record out of a scan under the comparator.
func BestOf(records []Record, cmp Comparator) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, rec := range records[1:] {
		if cmp(rec, best) {
			best = rec
		}
	}
	return best, true
}
