package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend persists one domain's active window and history documents in
// a pair of MongoDB collections keyed by userId.
type MongoBackend[P any] struct {
	client  *mongo.Client
	active  *mongo.Collection
	history *mongo.Collection
}

// NewMongoBackend wires the backend to the named collections.
func NewMongoBackend[P any](db *mongo.Database, activeName, historyName string) *MongoBackend[P] {
	return &MongoBackend[P]{
		client:  db.Client(),
		active:  db.Collection(activeName),
		history: db.Collection(historyName),
	}
}

// EnsureIndexes creates the unique userId indexes both collections rely on.
// The accessor's idempotent create depends on the unique index rejecting the
// second concurrent insert.
func (b *MongoBackend[P]) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := b.active.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create active index: %w", err)
	}
	if _, err := b.history.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create history index: %w", err)
	}
	return nil
}

func (b *MongoBackend[P]) FindActive(ctx context.Context, userID string) (*ActiveDoc[P], error) {
	var doc ActiveDoc[P]
	err := b.active.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *MongoBackend[P]) InsertActive(ctx context.Context, doc *ActiveDoc[P]) error {
	_, err := b.active.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// ReplaceActive writes the document body back, matched on (userId, version).
// A concurrent writer bumps the version first and this write matches nothing;
// that surfaces as ErrStale instead of silently losing the update.
func (b *MongoBackend[P]) ReplaceActive(ctx context.Context, doc *ActiveDoc[P]) error {
	filter := bson.M{"userId": doc.UserID, "version": doc.Version}
	update := bson.M{
		"$set": bson.M{"days": doc.Days},
		"$inc": bson.M{"version": 1},
	}
	res, err := b.active.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	doc.Version++
	return nil
}

func (b *MongoBackend[P]) FindHistory(ctx context.Context, userID string) (*HistoryDoc[P], error) {
	var doc HistoryDoc[P]
	err := b.history.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// EvictAndReplace runs the versioned active replace and the history append
// inside one transaction, so a lost replace race aborts the archive too and
// the hook cannot drift from the primary history write. ErrStale rolls the
// whole transaction back; the evicted day stays in the active window for the
// retry to archive exactly once.
func (b *MongoBackend[P]) EvictAndReplace(ctx context.Context, doc *ActiveDoc[P], evicted Day[P], hook ArchiveHook[P]) error {
	evict := func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"userId": doc.UserID, "version": doc.Version}
		update := bson.M{
			"$set": bson.M{"days": doc.Days},
			"$inc": bson.M{"version": 1},
		}
		res, err := b.active.UpdateOne(sc, filter, update)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrStale
		}

		push := bson.M{
			"$push":        bson.M{"days": evicted},
			"$setOnInsert": bson.M{"userId": doc.UserID},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := b.history.UpdateOne(sc, bson.M{"userId": doc.UserID}, push, opts); err != nil {
			return nil, err
		}
		if hook != nil {
			if err := hook(sc, doc.UserID, evicted); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	session, err := b.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	if _, err = session.WithTransaction(ctx, evict); err != nil {
		return err
	}
	doc.Version++
	return nil
}
