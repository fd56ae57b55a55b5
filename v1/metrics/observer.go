package metrics

import (
	"github.com/jeetendra29gupta/docstore/v1/observability"
)

// OperationObserver adapts a Metrics instance to the observability.Observer
// interface, so client packages can report their operations without importing
// Prometheus themselves.
type OperationObserver struct {
	metrics *Metrics
}

// Observer returns an observability.Observer backed by this Metrics instance.
//
// Example:
//
//	client = client.WithObserver(m.Observer())
func (m *Metrics) Observer() *OperationObserver {
	return &OperationObserver{metrics: m}
}

// ObserveOperation records one completed operation: a counter increment by
// outcome, a duration observation and, when the operation reported a
// magnitude, a result-size observation.
func (o *OperationObserver) ObserveOperation(ctx observability.OperationContext) {
	if o == nil || o.metrics == nil {
		return
	}

	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.metrics.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.metrics.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Size > 0 {
		o.metrics.operationSize.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}
