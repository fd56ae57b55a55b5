package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Common document-store errors
var (
	// ErrNoDocuments is returned by operations that decode a single document
	// when no document matched the query. It aliases the driver's sentinel so
	// errors.Is works across both.
	ErrNoDocuments = mongo.ErrNoDocuments

	// ErrClosed is returned when an operation is attempted after Close.
	ErrClosed = errors.New("mongo: client is closed")

	// ErrInvalidUpdate is returned by UpdateOne when the update document does
	// not use update-operator syntax. Passing a plain replacement document
	// would silently switch the semantics from partial update to full replace,
	// so it is rejected instead.
	ErrInvalidUpdate = errors.New("mongo: update document must use update operators such as $set")
)

// IsNoDocumentsError checks if the error means "no document matched".
func IsNoDocumentsError(err error) bool {
	return errors.Is(err, ErrNoDocuments)
}

// IsClosedError checks if the error is a "client is closed" error.
func IsClosedError(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsInvalidUpdateError checks if the error is an invalid-update rejection.
func IsInvalidUpdateError(err error) bool {
	return errors.Is(err, ErrInvalidUpdate)
}
