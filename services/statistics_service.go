package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitlog/models"
	"fitlog/status"
	"fitlog/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsBackend persists per-user statistics documents. Insert must reject a
// second document for the same user, Replace is a versioned compare-and-swap.
type StatsBackend interface {
	Find(ctx context.Context, userID string) (*models.StatisticsDocument, error)
	Insert(ctx context.Context, doc *models.StatisticsDocument) error
	Replace(ctx context.Context, doc *models.StatisticsDocument) error
}

// StatisticsService maintains per-user statistic groups and their running
// all-time counters.
type StatisticsService struct {
	backend StatsBackend
}

func NewStatisticsService(backend StatsBackend) *StatisticsService {
	return &StatisticsService{backend: backend}
}

// GetOrCreate fetches the user's statistics document, lazily creating an
// empty one. Losing a concurrent insert race re-fetches the winner.
func (s *StatisticsService) GetOrCreate(ctx context.Context, userID string) (*models.StatisticsDocument, status.Result) {
	doc, err := s.backend.Find(ctx, userID)
	if err == nil {
		return doc, status.OK()
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, failure(err)
	}

	fresh := &models.StatisticsDocument{UserID: userID, Groups: []models.StatisticGroup{}, Totals: []models.StatisticTotal{}}
	err = s.backend.Insert(ctx, fresh)
	if err == nil {
		return fresh, status.OK()
	}
	if errors.Is(err, store.ErrDuplicate) {
		doc, err = s.backend.Find(ctx, userID)
		if err != nil {
			return nil, failure(err)
		}
		return doc, status.OK()
	}
	return nil, failure(err)
}

// Accumulate appends the record and adds its value to the all-time counter.
// Steps, calories, distance, time and session counts use this path.
func (s *StatisticsService) Accumulate(ctx context.Context, userID string, t models.StatisticType, rec models.StatisticRecord) status.Result {
	doc, res := s.GetOrCreate(ctx, userID)
	if !res.Success {
		return res
	}
	group := doc.Group(t)
	group.Records = append(group.Records, rec)
	doc.Total(t).Value += rec.Value
	if err := s.backend.Replace(ctx, doc); err != nil {
		return failure(err)
	}
	return status.OK()
}

// ReplaceIfGreater appends the record and raises the all-time counter to the
// record's value when it beats the current best. Best-effort metrics (top
// lift weight, top speed) use this path.
func (s *StatisticsService) ReplaceIfGreater(ctx context.Context, userID string, t models.StatisticType, rec models.StatisticRecord) status.Result {
	doc, res := s.GetOrCreate(ctx, userID)
	if !res.Success {
		return res
	}
	group := doc.Group(t)
	group.Records = append(group.Records, rec)
	total := doc.Total(t)
	if rec.Value > total.Value {
		total.Value = rec.Value
	}
	if err := s.backend.Replace(ctx, doc); err != nil {
		return failure(err)
	}
	return status.OK()
}

// Document returns the user's full statistics document.
func (s *StatisticsService) Document(ctx context.Context, userID string) (*models.StatisticsDocument, status.Result) {
	return s.GetOrCreate(ctx, userID)
}

// WindowValue aggregates records of one type inside a time window: the
// all-time window reads the denormalized counter, bounded windows scan
// records with a date filter. The bool reports whether any record qualified;
// users without one contribute no leaderboard entry.
func (s *StatisticsService) WindowValue(ctx context.Context, userID string, t models.StatisticType, cutoff time.Time, bounded bool) (float64, bool, status.Result) {
	doc, res := s.GetOrCreate(ctx, userID)
	if !res.Success {
		return 0, false, res
	}

	group := doc.Group(t)
	if len(group.Records) == 0 {
		return 0, false, status.OK()
	}

	if !bounded {
		return doc.Total(t).Value, true, status.OK()
	}

	var sum float64
	var best float64
	found := false
	for _, rec := range group.Records {
		if rec.Date.Before(cutoff) {
			continue
		}
		found = true
		sum += rec.Value
		if rec.Value > best {
			best = rec.Value
		}
	}
	if !found {
		return 0, false, status.OK()
	}
	if t.Cumulative() {
		return sum, true, status.OK()
	}
	return best, true, status.OK()
}

// mongoStatsBackend stores statistics documents in a MongoDB collection with
// a unique userId index.
type mongoStatsBackend struct {
	coll *mongo.Collection
}

// NewMongoStatsBackend wires the backend to the named collection.
func NewMongoStatsBackend(db *mongo.Database, name string) StatsBackend {
	return &mongoStatsBackend{coll: db.Collection(name)}
}

// EnsureStatsIndexes creates the unique userId index the insert race relies on.
func EnsureStatsIndexes(ctx context.Context, db *mongo.Database, name string) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := db.Collection(name).Indexes().CreateOne(ctx, model)
	return err
}

func (b *mongoStatsBackend) Find(ctx context.Context, userID string) (*models.StatisticsDocument, error) {
	var doc models.StatisticsDocument
	err := b.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *mongoStatsBackend) Insert(ctx context.Context, doc *models.StatisticsDocument) error {
	_, err := b.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

func (b *mongoStatsBackend) Replace(ctx context.Context, doc *models.StatisticsDocument) error {
	filter := bson.M{"userId": doc.UserID, "version": doc.Version}
	update := bson.M{
		"$set": bson.M{"groups": doc.Groups, "totals": doc.Totals},
		"$inc": bson.M{"version": 1},
	}
	res, err := b.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrStale
	}
	doc.Version++
	return nil
}

// MemoryStatsBackend is the in-process implementation used by tests and
// Mongo-less local runs.
type MemoryStatsBackend struct {
	mu   sync.Mutex
	docs map[string]*models.StatisticsDocument
}

func NewMemoryStatsBackend() *MemoryStatsBackend {
	return &MemoryStatsBackend{docs: make(map[string]*models.StatisticsDocument)}
}

func (b *MemoryStatsBackend) Find(ctx context.Context, userID string) (*models.StatisticsDocument, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.docs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *doc
	out.Groups = append([]models.StatisticGroup{}, doc.Groups...)
	out.Totals = append([]models.StatisticTotal{}, doc.Totals...)
	return &out, nil
}

func (b *MemoryStatsBackend) Insert(ctx context.Context, doc *models.StatisticsDocument) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.docs[doc.UserID]; ok {
		return store.ErrDuplicate
	}
	copied := *doc
	b.docs[doc.UserID] = &copied
	return nil
}

func (b *MemoryStatsBackend) Replace(ctx context.Context, doc *models.StatisticsDocument) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, ok := b.docs[doc.UserID]
	if !ok || current.Version != doc.Version {
		return store.ErrStale
	}
	doc.Version++
	copied := *doc
	b.docs[doc.UserID] = &copied
	return nil
}
