package mongo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

// TestMongoInsertAndFind verifies inserts and identifier-based lookup.
func TestMongoInsertAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeMongo(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	client := startClient(ctx, t, host, port)

	t.Run("InsertOne then FindOne by id", func(t *testing.T) {
		defer client.Drop(ctx)

		id, err := client.InsertOne(ctx, Document{"name": "John", "address": "Highway 37"})
		require.NoError(t, err)
		require.NotNil(t, id)

		doc, err := client.FindOne(ctx, Query{"_id": id})
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "John", doc["name"])
		assert.Equal(t, "Highway 37", doc["address"])
	})

	t.Run("InsertMany returns ids in input order", func(t *testing.T) {
		defer client.Drop(ctx)

		docs := []Document{
			{"name": "Amy", "address": "Apple st 652"},
			{"name": "Hannah", "address": "Mountain 21"},
			{"name": "Michael", "address": "Valley 345"},
		}

		ids, err := client.InsertMany(ctx, docs)
		require.NoError(t, err)
		require.Len(t, ids, len(docs))

		for i, id := range ids {
			doc, err := client.FindOne(ctx, Query{"_id": id})
			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.Equal(t, docs[i]["name"], doc["name"], "id %d should map to input document %d", i, i)
		}
	})

	t.Run("FindOne with no match returns nil without error", func(t *testing.T) {
		doc, err := client.FindOne(ctx, Query{"name": "Nobody"})
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("Existence checks", func(t *testing.T) {
		// The database and collection only exist after a write.
		_, err := client.InsertOne(ctx, Document{"name": "seed"})
		require.NoError(t, err)
		defer client.Drop(ctx)

		dbExists, err := client.DatabaseExists(ctx, DefaultDatabase)
		require.NoError(t, err)
		assert.True(t, dbExists)

		collExists, err := client.CollectionExists(ctx, DefaultCollection)
		require.NoError(t, err)
		assert.True(t, collExists)

		missing, err := client.DatabaseExists(ctx, "no_such_database")
		require.NoError(t, err)
		assert.False(t, missing)

		missingColl, err := client.CollectionExists(ctx, "no_such_collection")
		require.NoError(t, err)
		assert.False(t, missingColl)
	})
}

// TestMongoQueries verifies condition queries, sorting and limiting.
func TestMongoQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeMongo(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	client := startClient(ctx, t, host, port)

	seed := []Document{
		{"name": "Sandy", "address": "Ocean blue 2"},
		{"name": "Amy", "address": "Apple st 652"},
		{"name": "Betty", "address": "Green Grass 1"},
		{"name": "Richard", "address": "Sky red 331"},
		{"name": "Amy", "address": "Central road 954"},
	}
	_, err := client.InsertMany(ctx, seed)
	require.NoError(t, err)

	t.Run("Find with condition returns exactly the matching subset", func(t *testing.T) {
		docs, err := client.Find(ctx, Query{"name": "Amy"})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		for _, doc := range docs {
			assert.Equal(t, "Amy", doc["name"])
		}
	})

	t.Run("FindAll returns every document", func(t *testing.T) {
		docs, err := client.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, len(seed))
	})

	t.Run("FindSorted ascending yields non-decreasing values", func(t *testing.T) {
		docs, err := client.FindSorted(ctx, "name", Ascending)
		require.NoError(t, err)
		require.Len(t, docs, len(seed))
		for i := 1; i < len(docs); i++ {
			prev := docs[i-1]["name"].(string)
			curr := docs[i]["name"].(string)
			assert.LessOrEqual(t, prev, curr)
		}
	})

	t.Run("FindSorted descending yields non-increasing values", func(t *testing.T) {
		docs, err := client.FindSorted(ctx, "name", Descending)
		require.NoError(t, err)
		require.Len(t, docs, len(seed))
		for i := 1; i < len(docs); i++ {
			prev := docs[i-1]["name"].(string)
			curr := docs[i]["name"].(string)
			assert.GreaterOrEqual(t, prev, curr)
		}
	})

	t.Run("FindSorted defaults to ascending", func(t *testing.T) {
		docs, err := client.FindSorted(ctx, "name", 0)
		require.NoError(t, err)
		require.NotEmpty(t, docs)
		assert.Equal(t, "Amy", docs[0]["name"])
	})

	t.Run("FindLimited returns at most N documents", func(t *testing.T) {
		docs, err := client.FindLimited(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("CountDocuments", func(t *testing.T) {
		count, err := client.CountDocuments(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(len(seed)), count)

		count, err = client.CountDocuments(ctx, Query{"name": "Amy"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

// TestMongoMutations verifies update and delete semantics.
func TestMongoMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeMongo(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	client := startClient(ctx, t, host, port)

	t.Run("UpdateOne modifies the matching document", func(t *testing.T) {
		defer client.Drop(ctx)

		id, err := client.InsertOne(ctx, Document{"name": "John", "address": "Highway 37"})
		require.NoError(t, err)

		modified, err := client.UpdateOne(ctx,
			Query{"name": "John"},
			Update{"$set": Document{"address": "Canyon 123"}},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1), modified)

		doc, err := client.FindOne(ctx, Query{"_id": id})
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "Canyon 123", doc["address"])
	})

	t.Run("UpdateOne with no match reports zero modified", func(t *testing.T) {
		modified, err := client.UpdateOne(ctx,
			Query{"name": "Nobody"},
			Update{"$set": Document{"address": "Nowhere"}},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(0), modified)
	})

	t.Run("UpdateOne rejects plain replacement documents", func(t *testing.T) {
		_, err := client.UpdateOne(ctx, Query{"name": "John"}, Update{"address": "Canyon 123"})
		require.Error(t, err)
		assert.True(t, IsInvalidUpdateError(err))
	})

	t.Run("DeleteOne removes exactly one of multiple matches", func(t *testing.T) {
		defer client.Drop(ctx)

		_, err := client.InsertMany(ctx, []Document{
			{"name": "Amy", "address": "Apple st 652"},
			{"name": "Amy", "address": "Central road 954"},
		})
		require.NoError(t, err)

		deleted, err := client.DeleteOne(ctx, Query{"name": "Amy"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		remaining, err := client.CountDocuments(ctx, Query{"name": "Amy"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), remaining)
	})

	t.Run("DeleteOne with no match reports zero deleted", func(t *testing.T) {
		deleted, err := client.DeleteOne(ctx, Query{"name": "Nobody"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})

	t.Run("DeleteMany removes every match", func(t *testing.T) {
		defer client.Drop(ctx)

		_, err := client.InsertMany(ctx, []Document{
			{"name": "Amy"}, {"name": "Amy"}, {"name": "Ben"},
		})
		require.NoError(t, err)

		deleted, err := client.DeleteMany(ctx, Query{"name": "Amy"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
	})
}

// TestMongoDemoScenario runs the documented end-to-end sequence: insert John,
// find him, move him to Canyon 123, delete him, and confirm he is gone.
func TestMongoDemoScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeMongo(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	client := startClient(ctx, t, host, port)

	_, err := client.InsertOne(ctx, Document{"name": "John", "address": "Highway 37"})
	require.NoError(t, err)

	doc, err := client.FindOne(ctx, Query{"name": "John"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Highway 37", doc["address"])

	modified, err := client.UpdateOne(ctx,
		Query{"name": "John"},
		Update{"$set": Document{"address": "Canyon 123"}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	doc, err = client.FindOne(ctx, Query{"name": "John"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Canyon 123", doc["address"])

	deleted, err := client.DeleteOne(ctx, Query{"name": "John"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	doc, err = client.FindOne(ctx, Query{"name": "John"})
	require.NoError(t, err)
	assert.Nil(t, doc)
}

// Helper functions

// startClient builds a client against the given endpoint through the fx
// module, so the lifecycle wiring is exercised too.
func startClient(ctx context.Context, t *testing.T, host string, port int) *MongoClient {
	t.Helper()

	var client *MongoClient

	cfg := Config{
		Host: host,
		Port: port,
	}

	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config { return cfg },
		),
		fx.Populate(&client),
		fx.NopLogger,
	)

	require.NoError(t, app.Start(ctx))
	t.Cleanup(func() {
		_ = app.Stop(ctx)
	})

	return client
}

func initializeMongo(ctx context.Context, t *testing.T) (string, int, testcontainers.Container) {
	t.Helper()

	hostPort, err := getFreePort()
	require.NoError(t, err)

	containerInstance, err := createMongoContainer(ctx, hostPort)
	require.NoError(t, err)

	port, err := containerInstance.MappedPort(ctx, "27017")
	require.NoError(t, err)

	host, err := containerInstance.Host(ctx)
	require.NoError(t, err)

	// Wait for MongoDB to accept connections
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port.Port()), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 30*time.Second, 500*time.Millisecond, "MongoDB port not ready")

	return host, port.Int(), containerInstance
}

func createMongoContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"27017/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image: "mongo:7.0",
		ExposedPorts: []string{
			"27017/tcp",
		},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("27017/tcp").WithStartupTimeout(60*time.Second),
			wait.ForLog("Waiting for connections").WithStartupTimeout(60*time.Second),
		),
	}

	var containerInstance testcontainers.Container
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		containerInstance, lastErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if lastErr == nil {
			return containerInstance, nil
		}

		if strings.Contains(lastErr.Error(), "docker.sock") {
			time.Sleep(time.Duration(attempt+1) * time.Second)
			continue
		}

		return nil, lastErr
	}

	return nil, fmt.Errorf("failed to create mongo container after retries: %w", lastErr)
}

func getFreePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()

	_, port, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		return "", err
	}
	return port, nil
}
