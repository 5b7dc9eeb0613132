package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"fitlog/leaderboard"
	"fitlog/models"
	"fitlog/status"
	"fitlog/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityIndexStore persists the read-optimized per-activity view over
// cardio history. Append only ever runs from the archive hook, so the index
// cannot drift from the primary history document.
type ActivityIndexStore interface {
	Append(ctx context.Context, userID string, day store.Day[[]models.CardioSession]) error
	Find(ctx context.Context, userID string) (*models.CardioActivityIndex, error)
}

// CardioService owns per-user cardio days and the derived activity index.
type CardioService struct {
	store *store.Store[[]models.CardioSession]
	index ActivityIndexStore
	stats *StatisticsService
}

func NewCardioService(backend store.Backend[[]models.CardioSession], window int, index ActivityIndexStore, stats *StatisticsService) *CardioService {
	s := store.New(backend, window, func(existing, incoming []models.CardioSession) []models.CardioSession {
		return append(existing, incoming...)
	})
	s.SetArchiveHook(func(ctx context.Context, userID string, day store.Day[[]models.CardioSession]) error {
		return index.Append(ctx, userID, day)
	})
	return &CardioService{store: s, index: index, stats: stats}
}

// LogSession records a cardio session on day `date`. Speed is derived from
// distance and duration when the caller does not supply it.
func (c *CardioService) LogSession(ctx context.Context, userID string, date time.Time, session models.CardioSession) status.Result {
	if session.DistanceKm < 0 || session.DurationSec < 0 {
		return status.Error(status.ModelStateNotValid, "distance and duration must be non-negative")
	}
	if session.SpeedKmh == 0 && session.DurationSec > 0 {
		session.SpeedKmh = session.DistanceKm / (float64(session.DurationSec) / 3600.0)
	}

	if err := c.store.UpsertDay(ctx, userID, date, []models.CardioSession{session}); err != nil {
		return failure(err)
	}

	if c.stats != nil {
		day := store.DayOf(date)
		if res := c.stats.Accumulate(ctx, userID, models.StatDistance, models.StatisticRecord{
			Date: day, Value: session.DistanceKm,
		}); !res.Success {
			return res
		}
		if res := c.stats.Accumulate(ctx, userID, models.StatSessionCount, models.StatisticRecord{
			Date: day, Value: 1, DurationSec: session.DurationSec,
		}); !res.Success {
			return res
		}
	}
	return status.OK()
}

// Day returns the sessions logged for one active day.
func (c *CardioService) Day(ctx context.Context, userID string, date time.Time) ([]models.CardioSession, status.Result) {
	day, ok, err := c.store.Day(ctx, userID, date)
	if err != nil {
		return nil, failure(err)
	}
	if !ok {
		return nil, status.Error(status.NotFound, "no cardio entry for that day")
	}
	return day.Payload, status.OK()
}

// ActiveDays returns the user's current window.
func (c *CardioService) ActiveDays(ctx context.Context, userID string) ([]store.Day[[]models.CardioSession], status.Result) {
	doc, err := c.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, failure(err)
	}
	return doc.Days, status.OK()
}

// RemoveDay drops one day from the active window.
func (c *CardioService) RemoveDay(ctx context.Context, userID string, date time.Time) status.Result {
	if err := c.store.RemoveDay(ctx, userID, date); err != nil {
		return failure(err)
	}
	return status.OK()
}

// History returns the archived cardio days.
func (c *CardioService) History(ctx context.Context, userID string) ([]store.Day[[]models.CardioSession], status.Result) {
	hist, err := c.store.History(ctx, userID)
	if err != nil {
		return nil, failure(err)
	}
	return hist.Days, status.OK()
}

// MostRecent returns the newest session of one activity type, checking the
// active window and the derived index over history.
func (c *CardioService) MostRecent(ctx context.Context, userID string, activity models.ActivityType) (models.TimedSession, status.Result) {
	var best models.TimedSession
	found := false

	doc, err := c.store.GetOrCreate(ctx, userID)
	if err != nil {
		return models.TimedSession{}, failure(err)
	}
	for _, day := range doc.Days {
		for _, sess := range day.Payload {
			if sess.Activity != activity {
				continue
			}
			if !found || day.Date.After(best.Date) {
				best = models.TimedSession{Date: day.Date, Session: sess}
				found = true
			}
		}
	}

	idx, err := c.index.Find(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return models.TimedSession{}, failure(err)
	}
	if idx != nil {
		for _, group := range idx.Groups {
			if group.Activity != activity {
				continue
			}
			for _, ts := range group.Sessions {
				if !found || ts.Date.After(best.Date) {
					best = ts
					found = true
				}
			}
		}
	}

	if !found {
		return models.TimedSession{}, status.Errorf(status.NotFound, "no %s session recorded", activity)
	}
	return best, status.OK()
}

// BestSpeedSource feeds the leaderboard engine: one user's fastest session of
// the given activity inside the window, scanning active and history days.
func (c *CardioService) BestSpeedSource(activity models.ActivityType) leaderboard.SourceFunc {
	return func(ctx context.Context, userID string, window leaderboard.TimeWindow, now time.Time) (leaderboard.Record, bool, error) {
		days, err := c.store.AllDays(ctx, userID)
		if err != nil {
			return leaderboard.Record{}, false, err
		}
		var records []leaderboard.Record
		for _, day := range days {
			if !window.Contains(now, day.Date) {
				continue
			}
			for _, sess := range day.Payload {
				if sess.Activity != activity {
					continue
				}
				records = append(records, leaderboard.Record{
					UserID: userID,
					Value:  sess.SpeedKmh,
					Date:   day.Date,
					Detail: map[string]float64{
						"distanceKm":  sess.DistanceKm,
						"durationSec": float64(sess.DurationSec),
					},
				})
			}
		}
		best, ok := leaderboard.BestOf(records, leaderboard.ValueDesc)
		return best, ok, nil
	}
}

// mongoActivityIndex stores the activity index in MongoDB. Append runs under
// the archive transaction's session context, so the index write commits or
// aborts together with the history append.
type mongoActivityIndex struct {
	coll *mongo.Collection
}

func NewMongoActivityIndex(db *mongo.Database, name string) ActivityIndexStore {
	return &mongoActivityIndex{coll: db.Collection(name)}
}

// EnsureActivityIndexIndexes creates the unique userId index.
func EnsureActivityIndexIndexes(ctx context.Context, db *mongo.Database, name string) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := db.Collection(name).Indexes().CreateOne(ctx, model)
	return err
}

func (m *mongoActivityIndex) Append(ctx context.Context, userID string, day store.Day[[]models.CardioSession]) error {
	var idx models.CardioActivityIndex
	err := m.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&idx)
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}
	if err == mongo.ErrNoDocuments {
		idx = models.CardioActivityIndex{UserID: userID}
	}

	appendSession(&idx, day)

	opts := options.Replace().SetUpsert(true)
	_, err = m.coll.ReplaceOne(ctx, bson.M{"userId": userID}, idx, opts)
	return err
}

func (m *mongoActivityIndex) Find(ctx context.Context, userID string) (*models.CardioActivityIndex, error) {
	var idx models.CardioActivityIndex
	err := m.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&idx)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

// MemoryActivityIndex is the in-process index used by tests.
type MemoryActivityIndex struct {
	mu   sync.Mutex
	docs map[string]*models.CardioActivityIndex
}

func NewMemoryActivityIndex() *MemoryActivityIndex {
	return &MemoryActivityIndex{docs: make(map[string]*models.CardioActivityIndex)}
}

func (m *MemoryActivityIndex) Append(ctx context.Context, userID string, day store.Day[[]models.CardioSession]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.docs[userID]
	if !ok {
		idx = &models.CardioActivityIndex{UserID: userID}
		m.docs[userID] = idx
	}
	appendSession(idx, day)
	return nil
}

func (m *MemoryActivityIndex) Find(ctx context.Context, userID string) (*models.CardioActivityIndex, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.docs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *idx
	out.Groups = append([]models.ActivityGroup{}, idx.Groups...)
	return &out, nil
}

// appendSession folds an archived day into the index, grouping by activity
// and keeping each group sorted by date.
func appendSession(idx *models.CardioActivityIndex, day store.Day[[]models.CardioSession]) {
	for _, sess := range day.Payload {
		var group *models.ActivityGroup
		for i := range idx.Groups {
			if idx.Groups[i].Activity == sess.Activity {
				group = &idx.Groups[i]
				break
			}
		}
		if group == nil {
			idx.Groups = append(idx.Groups, models.ActivityGroup{Activity: sess.Activity})
			group = &idx.Groups[len(idx.Groups)-1]
		}
		group.Sessions = append(group.Sessions, models.TimedSession{Date: day.Date, Session: sess})
		sort.SliceStable(group.Sessions, func(i, j int) bool {
			return group.Sessions[i].Date.Before(group.Sessions[j].Date)
		})
	}
}
