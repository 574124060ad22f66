package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/autolearn/kotoba/internal/models"
)

// Mongo implements Store backed by a MongoDB collection. The connection is
// established once at startup and the handle injected into every consumer;
// there is no lazy first-use initialization.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to MongoDB, pings it, and binds the words collection.
func Open(ctx context.Context, url, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("catalog: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("catalog: ping: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Insert persists one word record.
func (m *Mongo) Insert(ctx context.Context, rec *models.WordRecord) error {
	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("catalog: insert %s: %w", rec.Filename, err)
	}
	return nil
}

// DeleteAll removes every word record from the collection.
func (m *Mongo) DeleteAll(ctx context.Context) error {
	if _, err := m.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("catalog: delete all: %w", err)
	}
	return nil
}

// ListAll returns all word records, newest first. The Mongo-internal _id is
// projected out so only the record's own id reaches callers.
func (m *Mongo) ListAll(ctx context.Context) ([]models.WordRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}})
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: find: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.WordRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return out, nil
}
