// Package mongo provides functionality for interacting with a MongoDB
// document store.
//
// The package wraps the official MongoDB Go driver with a client pinned to a
// single database/collection pair and exposes the common document operations:
// existence checks, single and batch inserts, queries (all, filtered, sorted,
// limited), partial updates and deletes.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Client interface: Defines the contract for document-store operations
//   - MongoClient struct: Concrete implementation of the Client interface
//   - NewClient constructor: Returns *MongoClient (concrete type)
//   - FX module: Provides *MongoClient for dependency injection
//
// Core features:
//   - Explicit client construction and lifecycle (no package-level state)
//   - Lazy connection semantics matching the driver: NewClient succeeds even
//     when the endpoint is down; errors surface on first use. Ping verifies
//     reachability eagerly, and the FX module pings on application start.
//   - Explicit results and typed errors instead of console reporting
//   - Optional structured logging via the Logger interface (v1/logger fits)
//   - Optional operation observability via observability.Observer
//
// # Direct Usage (Without FX)
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
//
//	ctx := context.Background()
//	id, err := client.InsertOne(ctx, mongo.Document{"name": "John", "address": "Highway 37"})
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,  // optional: provides structured logging
//	    metrics.FXModule, // optional: provides the operation observer
//	    mongo.FXModule,
//	    fx.Provide(func() mongo.Config {
//	        return mongo.Config{Host: "localhost", Port: 27017}
//	    }),
//	    fx.Invoke(func(client *mongo.MongoClient) {
//	        // use the client
//	    }),
//	)
//	app.Run()
//
// # Queries
//
// Queries are plain bson.M mappings from field names (or operators) to match
// conditions; a nil query matches every document:
//
//	doc, err := client.FindOne(ctx, mongo.Query{"name": "John"})
//	docs, err := client.Find(ctx, mongo.Query{"address": "Highway 37"})
//	all, err := client.FindAll(ctx)
//	sorted, err := client.FindSorted(ctx, "name", mongo.Ascending)
//	firstFive, err := client.FindLimited(ctx, 5)
//
// # Updates
//
// UpdateOne requires update-operator syntax. A plain replacement document is
// rejected with ErrInvalidUpdate instead of silently replacing the document:
//
//	modified, err := client.UpdateOne(ctx,
//	    mongo.Query{"name": "John"},
//	    mongo.Update{"$set": mongo.Document{"address": "Canyon 123"}},
//	)
//
// # Error Handling
//
// "Not found" is not an error: FindOne returns (nil, nil), UpdateOne and
// DeleteOne return a zero count. Connectivity and query-syntax failures are
// returned wrapped and untranslated; use errors.Is / the Is* helpers in
// errors.go to classify them.
//
// # Observability (Observer Hook)
//
// The client supports optional observability through the Observer interface
// from the observability package. Every operation emits an event with
// Component "mongo", the operation name ("insert_one", "find", "update_one",
// ...), the collection as Resource, the duration, the error if any, and the
// result magnitude (documents returned, modified or deleted).
//
//	client = client.WithObserver(myObserver).WithLogger(myLogger)
//
// With FX, an observability.Observer present in the container (for example
// from metrics.FXModule) is injected automatically.
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines; the
// underlying driver maintains its own connection pool.
package mongo
