// Package db provides MongoDB connection handling and the collection layout
// for the recommendation service.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectTimeout bounds the initial connection and ping.
const ConnectTimeout = 10 * time.Second

// Collections names the physical collections this service reads. The profile
// collections are tried in order: the current name first, then the legacy
// name left behind by an earlier schema migration. Constructed once at
// startup and passed explicitly to stores; nothing reads collection names
// from ambient state.
type Collections struct {
	Listings string
	Profiles []string
}

// DefaultCollections returns the production collection layout.
func DefaultCollections() Collections {
	return Collections{
		Listings: "listings",
		Profiles: []string{"studentProfile", "studentprofiles"},
	}
}

// Connect establishes a MongoDB client and verifies connectivity with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}
