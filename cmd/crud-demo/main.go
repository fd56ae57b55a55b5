// Command crud-demo runs a fixed demonstration sequence of document-store
// operations against a MongoDB endpoint: existence checks, single and batch
// inserts, queries (one, all, filtered, sorted, limited), a partial update
// and a delete.
//
// Configuration comes from the environment:
//
//	MONGODB_URI         full connection string (overrides host/port)
//	MONGODB_HOST        server host (default "localhost")
//	MONGODB_PORT        server port (default 27017)
//	MONGODB_DATABASE    database name (default "my_first_database")
//	MONGODB_COLLECTION  collection name (default "my_first_collection")
//	METRICS_ADDRESS     /metrics listen address (default ":9090")
//
// Results are narrated to stdout; structured logs go to stderr; operation
// metrics are exposed on /metrics for the lifetime of the run.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/jeetendra29gupta/docstore/v1/logger"
	"github.com/jeetendra29gupta/docstore/v1/metrics"
	"github.com/jeetendra29gupta/docstore/v1/mongo"
)

func main() {
	app := fx.New(
		logger.FXModule,
		metrics.FXModule,
		mongo.FXModule,
		fx.Provide(
			newLoggerConfig,
			newMetricsConfig,
			newMongoConfig,
			func(l *logger.Logger) mongo.Logger { return l },
		),
		fx.Invoke(registerDemo),
		fx.NopLogger,
	)
	app.Run()

	if err := app.Err(); err != nil {
		os.Exit(1)
	}
}

func newLoggerConfig() logger.Config {
	return logger.Config{
		Level:       logger.Info,
		ServiceName: "crud-demo",
	}
}

func newMetricsConfig() metrics.Config {
	return metrics.Config{
		Address:                 envOr("METRICS_ADDRESS", metrics.DefaultAddress),
		ServiceName:             "crud-demo",
		EnableDefaultCollectors: true,
	}
}

func newMongoConfig() mongo.Config {
	port := mongo.DefaultPort
	if v := os.Getenv("MONGODB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	return mongo.Config{
		URI:        os.Getenv("MONGODB_URI"),
		Host:       envOr("MONGODB_HOST", mongo.DefaultHost),
		Port:       port,
		Database:   envOr("MONGODB_DATABASE", mongo.DefaultDatabase),
		Collection: envOr("MONGODB_COLLECTION", mongo.DefaultCollection),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// registerDemo schedules the demonstration sequence to run once the
// application has started (i.e. after the client's startup ping), then shuts
// the application down.
func registerDemo(lc fx.Lifecycle, shutdowner fx.Shutdowner, client *mongo.MongoClient, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ctx := context.Background()
				runID := uuid.NewString()

				log.Info("Starting demo run", nil, map[string]interface{}{"run_id": runID})

				exitCode := 0
				if err := runDemo(ctx, client); err != nil {
					log.Error("Demo run failed", err, map[string]interface{}{"run_id": runID})
					exitCode = 1
				} else {
					log.Info("Demo run finished", nil, map[string]interface{}{"run_id": runID})
				}

				_ = shutdowner.Shutdown(fx.ExitCode(exitCode))
			}()
			return nil
		},
	})
}

// runDemo executes the fixed operation sequence. Each step narrates its
// result to stdout; the first error aborts the run.
func runDemo(ctx context.Context, client *mongo.MongoClient) error {
	if err := checkDatabaseExists(ctx, client, mongo.DefaultDatabase); err != nil {
		return err
	}
	if err := checkCollectionExists(ctx, client, mongo.DefaultCollection); err != nil {
		return err
	}

	if err := insertSingleDocument(ctx, client, mongo.Document{"name": "John", "address": "Highway 37"}); err != nil {
		return err
	}

	if err := insertMultipleDocuments(ctx, client, []mongo.Document{
		{"name": "Amy", "address": "Apple st 652"},
		{"name": "Hannah", "address": "Mountain 21"},
		{"name": "Michael", "address": "Valley 345"},
		{"name": "Sandy", "address": "Ocean blue 2"},
		{"name": "Betty", "address": "Green Grass 1"},
		{"name": "Richard", "address": "Sky red 331"},
		{"name": "Susan", "address": "One way 98"},
		{"name": "Vicky", "address": "Yellow Garden 2"},
		{"name": "Ben", "address": "Park Lane 38"},
		{"name": "William", "address": "Central road 954"},
		{"name": "Chuck", "address": "Main Road 989"},
		{"name": "Viola", "address": "Side way 1633"},
	}); err != nil {
		return err
	}

	if err := findOneDocument(ctx, client, mongo.Query{"name": "John"}); err != nil {
		return err
	}
	if err := findAllDocuments(ctx, client); err != nil {
		return err
	}
	if err := findDocumentsWithCondition(ctx, client, mongo.Query{"address": "Highway 37"}); err != nil {
		return err
	}
	if err := sortDocumentsByField(ctx, client, "name", mongo.Ascending); err != nil {
		return err
	}

	if err := updateDocument(ctx, client,
		mongo.Query{"name": "John"},
		mongo.Update{"$set": mongo.Document{"address": "Canyon 123"}},
	); err != nil {
		return err
	}

	if err := deleteDocument(ctx, client, mongo.Query{"name": "John"}); err != nil {
		return err
	}

	if err := limitResults(ctx, client, 5); err != nil {
		return err
	}

	// Recheck after the writes: both must exist now.
	if err := checkDatabaseExists(ctx, client, mongo.DefaultDatabase); err != nil {
		return err
	}
	return checkCollectionExists(ctx, client, mongo.DefaultCollection)
}

func checkDatabaseExists(ctx context.Context, client *mongo.MongoClient, name string) error {
	exists, err := client.DatabaseExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("The database exists.")
	} else {
		fmt.Println("The database does not exist.")
	}
	return nil
}

func checkCollectionExists(ctx context.Context, client *mongo.MongoClient, name string) error {
	exists, err := client.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("The collection exists.")
	} else {
		fmt.Println("The collection does not exist.")
	}
	return nil
}

func insertSingleDocument(ctx context.Context, client *mongo.MongoClient, doc mongo.Document) error {
	id, err := client.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted document with ID: %v\n", id)
	return nil
}

func insertMultipleDocuments(ctx context.Context, client *mongo.MongoClient, docs []mongo.Document) error {
	ids, err := client.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted documents with IDs: %v\n", ids)
	return nil
}

func findOneDocument(ctx context.Context, client *mongo.MongoClient, query mongo.Query) error {
	doc, err := client.FindOne(ctx, query)
	if err != nil {
		return err
	}
	if doc == nil {
		fmt.Println("Find One: none found")
		return nil
	}
	fmt.Printf("Find One: %v\n", doc)
	return nil
}

func findAllDocuments(ctx context.Context, client *mongo.MongoClient) error {
	docs, err := client.FindAll(ctx)
	if err != nil {
		return err
	}
	fmt.Println("All Documents:")
	for _, doc := range docs {
		fmt.Println(doc)
	}
	return nil
}

func findDocumentsWithCondition(ctx context.Context, client *mongo.MongoClient, query mongo.Query) error {
	docs, err := client.Find(ctx, query)
	if err != nil {
		return err
	}
	fmt.Printf("Documents with condition %v:\n", query)
	for _, doc := range docs {
		fmt.Println(doc)
	}
	return nil
}

func sortDocumentsByField(ctx context.Context, client *mongo.MongoClient, field string, order mongo.SortOrder) error {
	docs, err := client.FindSorted(ctx, field, order)
	if err != nil {
		return err
	}
	fmt.Printf("Sorted by %s:\n", field)
	for _, doc := range docs {
		fmt.Println(doc)
	}
	return nil
}

func updateDocument(ctx context.Context, client *mongo.MongoClient, query mongo.Query, update mongo.Update) error {
	modified, err := client.UpdateOne(ctx, query, update)
	if err != nil {
		return err
	}
	fmt.Printf("Documents updated: %d\n", modified)
	return nil
}

func deleteDocument(ctx context.Context, client *mongo.MongoClient, query mongo.Query) error {
	deleted, err := client.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	fmt.Printf("Documents deleted: %d\n", deleted)
	return nil
}

func limitResults(ctx context.Context, client *mongo.MongoClient, limit int64) error {
	docs, err := client.FindLimited(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Printf("Limiting to first %d documents:\n", limit)
	for _, doc := range docs {
		fmt.Println(doc)
	}
	return nil
}
