package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// normalizeQuery maps a nil query to the match-all filter the driver expects.
func normalizeQuery(query Query) bson.M {
	if query == nil {
		return bson.M{}
	}
	return query
}

// ListDatabases returns the names of all databases visible on the server.
func (m *MongoClient) ListDatabases(ctx context.Context) ([]string, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	start := time.Now()
	names, err := m.client.ListDatabaseNames(ctx, bson.M{})
	m.observeOperation("list_databases", "", "", time.Since(start), err, int64(len(names)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return names, nil
}

// DatabaseExists reports whether a database with the given name exists on the
// server. Databases are created implicitly on first write, so a database that
// has never held data does not exist yet.
func (m *MongoClient) DatabaseExists(ctx context.Context, name string) (bool, error) {
	names, err := m.ListDatabases(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ListCollections returns the names of all collections in the configured
// database.
func (m *MongoClient) ListCollections(ctx context.Context) ([]string, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	start := time.Now()
	names, err := m.database.ListCollectionNames(ctx, bson.M{})
	m.observeOperation("list_collections", "", m.cfg.Database, time.Since(start), err, int64(len(names)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// CollectionExists reports whether a collection with the given name exists in
// the configured database. Like databases, collections are created implicitly
// on first write.
func (m *MongoClient) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := m.ListCollections(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// InsertOne inserts a single document into the collection and returns the
// identifier the store assigned to it (or the explicit _id, if the document
// carried one).
func (m *MongoClient) InsertOne(ctx context.Context, doc Document) (interface{}, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := m.collection.InsertOne(ctx, doc)
	m.observeOperation("insert_one", m.cfg.Collection, "", time.Since(start), err, 1, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return result.InsertedID, nil
}

// InsertMany inserts the given documents in order and returns their assigned
// identifiers, index-correspondent to the input slice. The insert is ordered:
// a failure stops at the offending document.
func (m *MongoClient) InsertMany(ctx context.Context, docs []Document) ([]interface{}, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	payload := make([]interface{}, len(docs))
	for i, d := range docs {
		payload[i] = d
	}

	start := time.Now()
	result, err := m.collection.InsertMany(ctx, payload, options.InsertMany().SetOrdered(true))
	size := int64(0)
	if result != nil {
		size = int64(len(result.InsertedIDs))
	}
	m.observeOperation("insert_many", m.cfg.Collection, "", time.Since(start), err, size, map[string]interface{}{
		"document_count": len(docs),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert documents: %w", err)
	}
	return result.InsertedIDs, nil
}

// FindOne returns the first document matching the query, with no ordering
// guarantee. A query that matches nothing is not an error: FindOne returns
// (nil, nil).
func (m *MongoClient) FindOne(ctx context.Context, query Query) (Document, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	start := time.Now()
	var doc Document
	err := m.collection.FindOne(ctx, normalizeQuery(query)).Decode(&doc)
	if IsNoDocumentsError(err) {
		m.observeOperation("find_one", m.cfg.Collection, "", time.Since(start), nil, 0, nil)
		return nil, nil
	}
	m.observeOperation("find_one", m.cfg.Collection, "", time.Since(start), err, 1, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return doc, nil
}

// FindAll returns every document in the collection, in store-native order.
func (m *MongoClient) FindAll(ctx context.Context) ([]Document, error) {
	return m.Find(ctx, nil)
}

// Find returns all documents matching the query, in store-native order.
// A nil query matches everything.
func (m *MongoClient) Find(ctx context.Context, query Query) ([]Document, error) {
	return m.find(ctx, "find", query, nil, nil)
}

// FindSorted returns all documents in the collection ordered by the given
// field. An order of 0 defaults to Ascending.
func (m *MongoClient) FindSorted(ctx context.Context, field string, order SortOrder) ([]Document, error) {
	if field == "" {
		return nil, fmt.Errorf("sort field cannot be empty")
	}
	if order == 0 {
		order = Ascending
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: int(order)}})
	return m.find(ctx, "find_sorted", nil, opts, map[string]interface{}{
		"field": field,
		"order": int(order),
	})
}

// FindLimited returns at most limit documents, in store-native order with no
// explicit sort.
func (m *MongoClient) FindLimited(ctx context.Context, limit int64) ([]Document, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative")
	}

	opts := options.Find().SetLimit(limit)
	return m.find(ctx, "find_limited", nil, opts, map[string]interface{}{
		"limit": limit,
	})
}

// find is the shared cursor-draining implementation behind Find, FindSorted
// and FindLimited.
func (m *MongoClient) find(ctx context.Context, operation string, query Query, opts *options.FindOptions, metadata map[string]interface{}) ([]Document, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	start := time.Now()
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = m.collection.Find(ctx, normalizeQuery(query), opts)
	} else {
		cursor, err = m.collection.Find(ctx, normalizeQuery(query))
	}
	if err != nil {
		m.observeOperation(operation, m.cfg.Collection, "", time.Since(start), err, 0, metadata)
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	var docs []Document
	err = cursor.All(ctx, &docs)
	m.observeOperation(operation, m.cfg.Collection, "", time.Since(start), err, int64(len(docs)), metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// CountDocuments returns the number of documents matching the query.
// A nil query counts the whole collection.
func (m *MongoClient) CountDocuments(ctx context.Context, query Query) (int64, error) {
	if err := m.checkOpen(); err != nil {
		return 0, err
	}

	start := time.Now()
	count, err := m.collection.CountDocuments(ctx, normalizeQuery(query))
	m.observeOperation("count", m.cfg.Collection, "", time.Since(start), err, count, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// UpdateOne applies the update to the first document matching the query and
// returns the number of documents modified. Zero modified means nothing
// matched, which is not an error.
//
// The update must use update-operator syntax ({"$set": {...}}). A plain
// replacement document is rejected with ErrInvalidUpdate rather than silently
// replacing the whole document.
func (m *MongoClient) UpdateOne(ctx context.Context, query Query, update Update) (int64, error) {
	if err := m.checkOpen(); err != nil {
		return 0, err
	}
	if err := requireUpdateOperators(update); err != nil {
		return 0, err
	}

	start := time.Now()
	result, err := m.collection.UpdateOne(ctx, normalizeQuery(query), update)
	modified := int64(0)
	if result != nil {
		modified = result.ModifiedCount
	}
	m.observeOperation("update_one", m.cfg.Collection, "", time.Since(start), err, modified, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to update document: %w", err)
	}
	return modified, nil
}

// DeleteOne removes the first document matching the query and returns the
// number of documents deleted. Zero deleted means nothing matched, which is
// not an error. When multiple documents match, exactly one is removed.
func (m *MongoClient) DeleteOne(ctx context.Context, query Query) (int64, error) {
	return m.delete(ctx, "delete_one", query, false)
}

// DeleteMany removes every document matching the query and returns the number
// of documents deleted.
func (m *MongoClient) DeleteMany(ctx context.Context, query Query) (int64, error) {
	return m.delete(ctx, "delete_many", query, true)
}

func (m *MongoClient) delete(ctx context.Context, operation string, query Query, many bool) (int64, error) {
	if err := m.checkOpen(); err != nil {
		return 0, err
	}

	start := time.Now()
	var result *mongo.DeleteResult
	var err error
	if many {
		result, err = m.collection.DeleteMany(ctx, normalizeQuery(query))
	} else {
		result, err = m.collection.DeleteOne(ctx, normalizeQuery(query))
	}
	deleted := int64(0)
	if result != nil {
		deleted = result.DeletedCount
	}
	m.observeOperation(operation, m.cfg.Collection, "", time.Since(start), err, deleted, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}
	return deleted, nil
}

// Drop removes the configured collection and all of its documents. Dropping a
// collection that does not exist is a no-op.
func (m *MongoClient) Drop(ctx context.Context) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	start := time.Now()
	err := m.collection.Drop(ctx)
	m.observeOperation("drop", m.cfg.Collection, "", time.Since(start), err, 0, nil)
	if err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return nil
}

// requireUpdateOperators verifies that every top-level key of the update
// document is an update operator. Drivers interpret a non-operator document
// as a full replacement, which silently changes the operation's semantics;
// rejecting it keeps UpdateOne a partial update by contract.
func requireUpdateOperators(update Update) error {
	if len(update) == 0 {
		return fmt.Errorf("%w: update document is empty", ErrInvalidUpdate)
	}
	for key := range update {
		if !strings.HasPrefix(key, "$") {
			return fmt.Errorf("%w: field %q", ErrInvalidUpdate, key)
		}
	}
	return nil
}
