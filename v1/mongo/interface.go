package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Client provides a high-level interface for a MongoDB document store pinned
// to a single database/collection pair: existence checks, inserts, queries
// with sorting and limiting, partial updates and deletes.
//
// This interface is implemented by the concrete *MongoClient type.
type Client interface {
	// Connection and lifecycle
	Ping(ctx context.Context) error
	Client() *mongo.Client
	Database() *mongo.Database
	Collection() *mongo.Collection
	Close(ctx context.Context) error

	// Existence checks
	ListDatabases(ctx context.Context) ([]string, error)
	DatabaseExists(ctx context.Context, name string) (bool, error)
	ListCollections(ctx context.Context) ([]string, error)
	CollectionExists(ctx context.Context, name string) (bool, error)

	// Inserts
	InsertOne(ctx context.Context, doc Document) (interface{}, error)
	InsertMany(ctx context.Context, docs []Document) ([]interface{}, error)

	// Queries
	FindOne(ctx context.Context, query Query) (Document, error)
	FindAll(ctx context.Context) ([]Document, error)
	Find(ctx context.Context, query Query) ([]Document, error)
	FindSorted(ctx context.Context, field string, order SortOrder) ([]Document, error)
	FindLimited(ctx context.Context, limit int64) ([]Document, error)
	CountDocuments(ctx context.Context, query Query) (int64, error)

	// Mutations
	UpdateOne(ctx context.Context, query Query, update Update) (int64, error)
	DeleteOne(ctx context.Context, query Query) (int64, error)
	DeleteMany(ctx context.Context, query Query) (int64, error)
	Drop(ctx context.Context) error
}
