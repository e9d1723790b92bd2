// Package mongodb implements the bean and roast repositories on top of
// a MongoDB document store. Every operation issues a single document
// mutation and relies on the store's per-document atomicity; there are
// no multi-document transactions.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	beansCollection  = "beans"
	roastsCollection = "roasts"
)

// Store owns the MongoDB client and exposes the two collections the
// application works with. It is constructed once at process start and
// injected into every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Beans returns the beans collection handle.
func (s *Store) Beans() *mongo.Collection {
	return s.db.Collection(beansCollection)
}

// Roasts returns the roasts collection handle.
func (s *Store) Roasts() *mongo.Collection {
	return s.db.Collection(roastsCollection)
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
