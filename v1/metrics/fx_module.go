package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/jeetendra29gupta/docstore/v1/logger"
	"github.com/jeetendra29gupta/docstore/v1/observability"
)

// FXModule integrates the Prometheus metrics server into an Fx-based
// application.
//
// The module:
//  1. Provides the NewMetrics factory to the dependency injection container.
//  2. Provides an observability.Observer backed by the Metrics instance, so
//     client modules (e.g. mongo.FXModule) pick it up automatically.
//  3. Invokes RegisterMetricsLifecycle to start and gracefully stop the
//     /metrics HTTP server.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{
//	            Address:                 ":9090",
//	            ServiceName:             "crud-demo",
//	            EnableDefaultCollectors: true,
//	        }
//	    }),
//	    // other modules...
//	)
//
// A metrics.Config instance must be available in the container.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m.Observer() },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies needed for metrics lifecycle management.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    *logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the /metrics HTTP server in a background
// goroutine on application start and shuts it down gracefully on stop.
// Invoked automatically by FXModule.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if params.Logger != nil {
					params.Logger.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
						"address": params.Metrics.Server.Addr,
					})
				}
				if err := params.Metrics.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					if params.Logger != nil {
						params.Logger.Error("Metrics server terminated", err, nil)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("Shutting down Prometheus metrics server", nil, nil)
			}
			return params.Metrics.Server.Shutdown(ctx)
		},
	})
}
