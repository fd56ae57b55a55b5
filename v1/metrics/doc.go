// Package metrics provides Prometheus metrics collection and exposition.
//
// Each Metrics instance owns an isolated prometheus.Registry wrapped with a
// constant "service" label and an HTTP server exposing /metrics. The package
// also ships an adapter implementing observability.Observer, which translates
// document-store operation reports into three built-in metrics:
//
//   - docstore_operations_total{component,operation,status}
//   - docstore_operation_duration_seconds{component,operation}
//   - docstore_operation_result_size{component,operation}
//
// # Direct Usage
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "crud-demo",
//	})
//	go m.Server.ListenAndServe()
//
//	client = client.WithObserver(m.Observer())
//
// # FX Module Integration
//
// FXModule provides both *Metrics and observability.Observer, so any client
// module that declares an optional Observer dependency is wired automatically:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    mongo.FXModule,
//	    fx.Provide(func() metrics.Config { return metrics.Config{ServiceName: "crud-demo"} }),
//	)
package metrics
