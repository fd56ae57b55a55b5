// Package observability defines the hook through which client packages report
// their operations to external systems.
//
// Client packages (e.g. v1/mongo) stay decoupled from any concrete metrics or
// tracing implementation: they emit OperationContext values through the
// Observer interface, and the application decides what to do with them. The
// v1/metrics package ships a Prometheus-backed Observer; applications can also
// provide their own.
//
// A nil observer is always valid: clients must treat "no observer configured"
// as a no-op.
package observability

import "time"

// OperationContext describes a single completed operation against an external
// service. It is emitted by client packages after every round trip, whether it
// succeeded or failed.
type OperationContext struct {
	// Component identifies the emitting client package, e.g. "mongo".
	Component string

	// Operation is the short verb-like name of the action, e.g. "insert_one",
	// "find", "delete_one".
	Operation string

	// Resource is the primary target of the operation. For document stores this
	// is the collection name.
	Resource string

	// SubResource carries additional addressing context, e.g. a field name for
	// sorted queries or a database name for existence checks. May be empty.
	SubResource string

	// Duration is the wall-clock time the operation took, including the network
	// round trip.
	Duration time.Duration

	// Error is the error the operation returned, or nil on success.
	Error error

	// Size is an operation-specific magnitude: documents returned, documents
	// modified, bytes transferred. Zero when not meaningful.
	Size int64

	// Metadata holds operation-specific details that don't fit the fields
	// above, e.g. {"limit": 5} or {"order": "ascending"}.
	Metadata map[string]interface{}
}

// Observer receives operation reports from client packages.
//
// Implementations must be safe for concurrent use: clients may emit from
// multiple goroutines.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// NoopObserver is an Observer that discards everything. Useful as a default
// or in tests that don't assert on observability.
type NoopObserver struct{}

// ObserveOperation implements Observer by doing nothing.
func (NoopObserver) ObserveOperation(OperationContext) {}
