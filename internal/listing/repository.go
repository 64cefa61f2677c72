package listing

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines read access to the listing catalog.
// The catalog is written entirely by external systems; this service only
// reads snapshots at request time.
type Repository interface {
	// All returns every listing in the catalog.
	All(ctx context.Context) ([]Listing, error)

	// TopByRating returns up to limit listings ordered by eloRating descending.
	TopByRating(ctx context.Context, limit int64) ([]Listing, error)

	// Raw returns up to limit listings as raw documents, for debug inspection.
	Raw(ctx context.Context, limit int64) ([]bson.M, error)
}

// MongoRepository reads listings from a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a repository over the named collection.
func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collection)}
}

// All returns every listing in the catalog.
func (r *MongoRepository) All(ctx context.Context) ([]Listing, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	var out []Listing
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return out, nil
}

// TopByRating returns up to limit listings ordered by eloRating descending.
func (r *MongoRepository) TopByRating(ctx context.Context, limit int64) ([]Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "eloRating", Value: -1}}).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find top listings: %w", err)
	}
	var out []Listing
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode top listings: %w", err)
	}
	return out, nil
}

// Raw returns up to limit listings as raw documents.
func (r *MongoRepository) Raw(ctx context.Context, limit int64) ([]bson.M, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find raw listings: %w", err)
	}
	var out []bson.M
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode raw listings: %w", err)
	}
	return out, nil
}

// InMemoryRepository is an in-memory implementation of Repository.
// Used for testing and development.
type InMemoryRepository struct {
	listings []Listing
}

// NewInMemoryRepository creates an in-memory repository seeded with the given
// listings.
func NewInMemoryRepository(listings ...Listing) *InMemoryRepository {
	return &InMemoryRepository{listings: append([]Listing(nil), listings...)}
}

// Add appends a listing to the catalog.
func (r *InMemoryRepository) Add(l Listing) {
	r.listings = append(r.listings, l)
}

// All returns a copy of every listing in the catalog.
func (r *InMemoryRepository) All(ctx context.Context) ([]Listing, error) {
	return append([]Listing(nil), r.listings...), nil
}

// TopByRating returns up to limit listings ordered by eloRating descending.
func (r *InMemoryRepository) TopByRating(ctx context.Context, limit int64) ([]Listing, error) {
	out := append([]Listing(nil), r.listings...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EloRating > out[j].EloRating
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Raw returns up to limit listings as documents.
func (r *InMemoryRepository) Raw(ctx context.Context, limit int64) ([]bson.M, error) {
	var out []bson.M
	for i := range r.listings {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, r.listings[i].Document())
	}
	return out, nil
}
