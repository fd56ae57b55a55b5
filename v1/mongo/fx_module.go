package mongo

import (
	"context"

	"go.uber.org/fx"

	"github.com/jeetendra29gupta/docstore/v1/observability"
)

// FXModule is an fx.Module that provides and configures the document-store
// client.
//
// The module:
//  1. Provides the client factory function (with optional logger and observer
//     injection)
//  2. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    mongo.FXModule,
//	    fx.Provide(func() mongo.Config {
//	        return mongo.Config{Host: "localhost", Port: 27017}
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("mongo",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterMongoLifecycle),
)

// MongoParams groups the dependencies needed to create a document-store client.
type MongoParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"` // Optional logger from v1/logger
	Observer observability.Observer `optional:"true"` // Optional observer, e.g. from v1/metrics
}

// NewClientWithDI creates a new document-store client using dependency
// injection. The optional logger and observer are wired in before delegating
// to the standard NewClient constructor.
func NewClientWithDI(params MongoParams) (*MongoClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}
	return client, nil
}

// MongoLifecycleParams groups the dependencies needed for client lifecycle management.
type MongoLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *MongoClient
}

// RegisterMongoLifecycle registers the document-store client with the fx
// lifecycle system.
//
// On application start the client pings the server, converting the driver's
// lazy connection into a fail-fast startup check; on stop it disconnects
// cleanly. Invoked automatically by FXModule.
func RegisterMongoLifecycle(params MongoLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return params.Client.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close(ctx)
		},
	})
}
