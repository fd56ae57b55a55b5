package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule integrates the logger into an Fx-based application.
//
// The module provides the NewLoggerClient factory to the dependency injection
// container and registers a shutdown hook that flushes buffered log entries.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config {
//	        return logger.Config{Level: logger.Info, ServiceName: "crud-demo"}
//	    }),
//	    // other modules...
//	)
//
// A logger.Config instance must be available in the container.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle registers a stop hook that syncs the underlying Zap
// logger, flushing any buffered entries before the application terminates.
// Invoked automatically by FXModule.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
