package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jeetendra29gupta/docstore/v1/observability"
)

func TestObserverRecordsOperations(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	obs := m.Observer()

	obs.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "insert_one",
		Resource:  "my_first_collection",
		Duration:  5 * time.Millisecond,
		Size:      1,
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "insert_one",
		Resource:  "my_first_collection",
		Duration:  3 * time.Millisecond,
		Error:     errors.New("boom"),
	})

	success := testutil.ToFloat64(m.operationsTotal.WithLabelValues("mongo", "insert_one", "success"))
	if success != 1 {
		t.Fatalf("expected 1 success, got %v", success)
	}

	failure := testutil.ToFloat64(m.operationsTotal.WithLabelValues("mongo", "insert_one", "error"))
	if failure != 1 {
		t.Fatalf("expected 1 error, got %v", failure)
	}
}

func TestObserverNilReceiverNoPanic(t *testing.T) {
	var obs *OperationObserver

	// Should not panic.
	obs.ObserveOperation(observability.OperationContext{Component: "mongo", Operation: "find"})
}

func TestNewMetricsAppliesDefaultAddress(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	if m.Server.Addr != DefaultAddress {
		t.Fatalf("expected default address %q, got %q", DefaultAddress, m.Server.Addr)
	}
}
