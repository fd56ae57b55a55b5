package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it, together with the built-in metrics describing document-store
// operations.
//
// Each Metrics instance owns an isolated registry, so several services can
// coexist in one process without metric name collisions.
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry all metrics are registered in.
	Registry *prometheus.Registry

	// Built-in operation metrics, fed by the Observer adapter.
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationSize     *prometheus.HistogramVec
}

// NewMetrics initializes a Metrics instance: a dedicated registry wrapped
// with a constant service label, the built-in operation metrics, optional
// default collectors, and an HTTP server serving /metrics on cfg.Address.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "crud-demo",
//	    EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	registry := prometheus.NewRegistry()

	// All metrics emitted by this instance carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docstore_operations_total",
				Help: "Total number of document-store operations by outcome",
			},
			[]string{"component", "operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docstore_operation_duration_seconds",
				Help:    "Duration of document-store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"component", "operation"},
		),
		operationSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docstore_operation_result_size",
				Help:    "Result magnitude per operation (documents returned, modified or deleted)",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"component", "operation"},
		),
	}

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.operationSize,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}

// CreateCounter creates and registers a new CounterVec on this instance's registry.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates and registers a new HistogramVec on this instance's registry.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates and registers a new GaugeVec on this instance's registry.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}
