package mongo

import "go.mongodb.org/mongo-driver/bson"

// Document is a schema-less record: an unordered mapping from field names to
// values of mixed types (strings, numbers, booleans, nested documents,
// arrays). It aliases bson.M so values round-trip through the driver without
// conversion.
type Document = bson.M

// Query is a mapping from field name (or operator) to a match condition used
// to filter documents. A nil or empty Query matches every document.
type Query = bson.M

// Update is a mapping describing field-level mutations. Top-level keys must
// be update operators ("$set", "$inc", ...); a plain replacement document is
// rejected with ErrInvalidUpdate (see UpdateOne).
type Update = bson.M

// SortOrder is the direction of a sorted query, following the MongoDB +1/-1
// convention.
type SortOrder int

const (
	// Ascending sorts from the smallest value up. The default.
	Ascending SortOrder = 1

	// Descending sorts from the largest value down.
	Descending SortOrder = -1
)
