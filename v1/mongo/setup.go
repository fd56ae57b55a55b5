package mongo

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jeetendra29gupta/docstore/v1/observability"
)

// MongoClient represents a client for a MongoDB document store. It wraps the
// official driver and pins a single database/collection pair, exposing the
// document operations defined in operations.go against that collection.
//
// MongoClient implements the Client interface. All methods are safe for
// concurrent use; the underlying driver maintains its own connection pool.
type MongoClient struct {
	// client is the underlying driver client
	client *mongo.Client

	// database and collection are the handles all operations run against
	database   *mongo.Database
	collection *mongo.Collection

	// cfg stores the configuration this client was built from
	cfg Config

	// logger is used for structured logging
	logger Logger

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// mu protects closed
	mu     sync.RWMutex
	closed bool
}

// NewClient creates and initializes a new document-store client from the
// provided configuration.
//
// The driver connects lazily: NewClient succeeds even when the endpoint is
// unreachable, and connectivity errors surface on the first actual operation.
// Call Ping to verify reachability eagerly.
//
// Example:
//
//	client, err := mongo.NewClient(mongo.Config{
//	    Host:       "localhost",
//	    Port:       27017,
//	    Database:   "my_first_database",
//	    Collection: "my_first_collection",
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close(context.Background())
func NewClient(cfg Config) (*MongoClient, error) {
	// Apply defaults
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}

	uri := cfg.URI
	if uri == "" {
		uri = buildURI(cfg)
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.OperationTimeout > 0 {
		opts = opts.SetTimeout(cfg.OperationTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	database := client.Database(cfg.Database)

	m := &MongoClient{
		client:     client,
		database:   database,
		collection: database.Collection(cfg.Collection),
		cfg:        cfg,
		logger:     cfg.Logger,
	}

	if m.logger != nil {
		m.logger.Info("Mongo client initialized", nil, map[string]interface{}{
			"database":   cfg.Database,
			"collection": cfg.Collection,
		})
	}

	return m, nil
}

// buildURI assembles a mongodb:// connection string from the discrete config
// fields. Credentials are escaped so they survive special characters.
func buildURI(cfg Config) string {
	if cfg.Username != "" {
		return fmt.Sprintf("mongodb://%s@%s:%d/",
			url.UserPassword(cfg.Username, cfg.Password).String(),
			cfg.Host, cfg.Port)
	}
	return fmt.Sprintf("mongodb://%s:%d/", cfg.Host, cfg.Port)
}

// Ping checks that the MongoDB server is reachable and responsive.
// It returns an error if the primary cannot be reached.
func (m *MongoClient) Ping(ctx context.Context) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	return m.client.Ping(ctx, readpref.Primary())
}

// Client returns the underlying driver client for advanced operations.
func (m *MongoClient) Client() *mongo.Client {
	return m.client
}

// Database returns the driver handle for the configured database.
func (m *MongoClient) Database() *mongo.Database {
	return m.database
}

// Collection returns the driver handle for the configured collection.
func (m *MongoClient) Collection() *mongo.Collection {
	return m.collection
}

// Close disconnects the client and releases all resources. Operations issued
// after Close return ErrClosed.
func (m *MongoClient) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("Closing mongo client", nil, nil)
	}

	if err := m.client.Disconnect(ctx); err != nil {
		if m.logger != nil {
			m.logger.Warn("Failed to disconnect mongo client", err, nil)
		}
		return err
	}
	return nil
}

// checkOpen returns ErrClosed once Close has been called.
func (m *MongoClient) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// WithObserver sets the observer for this client and returns the client for
// method chaining. The observer receives an event for every document
// operation (insert, find, update, delete, ...).
func (m *MongoClient) WithObserver(observer observability.Observer) *MongoClient {
	m.observer = observer
	return m
}

// WithLogger sets the logger for this client and returns the client for
// method chaining.
func (m *MongoClient) WithLogger(logger Logger) *MongoClient {
	m.logger = logger
	return m
}
