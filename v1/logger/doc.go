// Package logger provides structured, leveled logging built on Uber's Zap.
//
// Every client package in this repository accepts an optional logger with the
// signature exposed here (Info/Warn/Error taking a message, an error and
// field maps), so the same logger instance can be shared across the whole
// application.
//
// # Direct Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "crud-demo",
//	})
//	log.Info("inserted document", nil, map[string]interface{}{
//	    "collection": "my_first_collection",
//	    "id":         id,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config {
//	        return logger.Config{Level: logger.Info, ServiceName: "crud-demo"}
//	    }),
//	)
//
// The module flushes buffered entries on application shutdown.
package logger
