package mongo

import (
	"time"

	"github.com/jeetendra29gupta/docstore/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track document-store operations for metrics and tracing.
//
// Notes:
//   - resource: collection name (empty for server-level operations)
//   - subResource: database name or field name, where relevant
func (m *MongoClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if m == nil || m.observer == nil {
		return
	}

	m.observer.ObserveOperation(observability.OperationContext{
		Component:   "mongo",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
