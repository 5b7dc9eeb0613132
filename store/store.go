package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a per-user document does not exist.
	ErrNotFound = errors.New("store: document not found")
	// ErrDuplicate is returned when an insert hits the unique userId index.
	ErrDuplicate = errors.New("store: duplicate document")
	// ErrStale is returned when a versioned replace matched no document,
	// meaning a concurrent writer got there first.
	ErrStale = errors.New("store: stale document version")
)

// Day is one calendar day of domain payload inside an active window or a
// history document. Date carries day granularity only (midnight UTC).
type Day[P any] struct {
	Date    time.Time `bson:"date" json:"date"`
	Payload P         `bson:"payload" json:"payload"`
}

// ActiveDoc holds the bounded, currently-editable set of day entries for one
// user. Version backs the compare-and-swap write path.
type ActiveDoc[P any] struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  string             `bson:"userId" json:"userId"`
	Version int64              `bson:"version" json:"-"`
	Days    []Day[P]           `bson:"days" json:"days"`
}

// HistoryDoc holds the unbounded append-only set of archived days for one
// user. Created lazily on first eviction, never pruned.
type HistoryDoc[P any] struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID string             `bson:"userId" json:"userId"`
	Days   []Day[P]           `bson:"days" json:"days"`
}

// ArchiveHook runs together with a history append, in the same transaction
// where the backend supports one. Cardio uses it to keep its activity index
// consistent with the primary history write.
type ArchiveHook[P any] func(ctx context.Context, userID string, day Day[P]) error

// Backend is the persistence contract for one domain's active window and
// history collections.
type Backend[P any] interface {
	FindActive(ctx context.Context, userID string) (*ActiveDoc[P], error)
	InsertActive(ctx context.Context, doc *ActiveDoc[P]) error
	// ReplaceActive swaps the document body matched on (userId, version) and
	// bumps the version. Zero matches report ErrStale.
	ReplaceActive(ctx context.Context, doc *ActiveDoc[P]) error
	FindHistory(ctx context.Context, userID string) (*HistoryDoc[P], error)
	// EvictAndReplace archives the evicted day and writes the new active
	// document body in one transaction, matched on (userId, version). A stale
	// version aborts the archive together with the replace, so a retried
	// eviction never lands the same day in history twice.
	EvictAndReplace(ctx context.Context, doc *ActiveDoc[P], evicted Day[P], hook ArchiveHook[P]) error
}

// DayOf truncates a timestamp to its calendar day in UTC.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
