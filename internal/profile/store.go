package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store defines read access to stored preference profiles.
//
// Profiles live in interchangeably named collections (a migration artifact:
// a legacy name and a current name). Implementations try each physical
// collection in a fixed order and return the first match; the duplication
// never leaks past this interface. Absence is signalled as (nil, nil) —
// a missing profile is a normal outcome, not an error.
type Store interface {
	// FindByUserID returns the first profile whose userId field matches.
	// userID is either a primitive.ObjectID or a raw string.
	FindByUserID(ctx context.Context, userID any) (*Profile, error)

	// FindByID returns the first profile keyed directly by the given id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Profile, error)

	// Raw returns up to limit raw documents per collection, for debug
	// inspection, keyed by collection name.
	Raw(ctx context.Context, limit int64) (map[string][]bson.M, error)

	// CollectionNames returns the physical collection names in lookup order.
	CollectionNames() []string
}

// MongoStore reads profiles from a fixed, ordered set of MongoDB collections.
type MongoStore struct {
	db          *mongo.Database
	collections []string
}

// NewMongoStore creates a store over the named collections, tried in order.
func NewMongoStore(db *mongo.Database, collections []string) *MongoStore {
	return &MongoStore{db: db, collections: append([]string(nil), collections...)}
}

// FindByUserID returns the first profile whose userId field matches.
func (s *MongoStore) FindByUserID(ctx context.Context, userID any) (*Profile, error) {
	return s.findOne(ctx, bson.M{"userId": userID})
}

// FindByID returns the first profile keyed directly by the given id.
func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Profile, error) {
	for _, name := range s.collections {
		var p Profile
		err := s.db.Collection(name).FindOne(ctx, filter).Decode(&p)
		if err == nil {
			return &p, nil
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		return nil, fmt.Errorf("find profile in %s: %w", name, err)
	}
	return nil, nil
}

// Raw returns up to limit raw documents per collection.
func (s *MongoStore) Raw(ctx context.Context, limit int64) (map[string][]bson.M, error) {
	out := make(map[string][]bson.M, len(s.collections))
	for _, name := range s.collections {
		cur, err := s.db.Collection(name).Find(ctx, bson.D{}, options.Find().SetLimit(limit))
		if err != nil {
			return nil, fmt.Errorf("find raw profiles in %s: %w", name, err)
		}
		var docs []bson.M
		if err := cur.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("decode raw profiles in %s: %w", name, err)
		}
		out[name] = docs
	}
	return out, nil
}

// CollectionNames returns the physical collection names in lookup order.
func (s *MongoStore) CollectionNames() []string {
	return append([]string(nil), s.collections...)
}

// InMemoryStore is an in-memory implementation of Store.
// Used for testing and development. All profiles live in a single logical
// collection; the two-name split only matters for the Mongo store.
type InMemoryStore struct {
	profiles []Profile
	names    []string
}

// NewInMemoryStore creates an in-memory store seeded with the given profiles.
func NewInMemoryStore(profiles ...Profile) *InMemoryStore {
	return &InMemoryStore{
		profiles: append([]Profile(nil), profiles...),
		names:    []string{"studentProfile", "studentprofiles"},
	}
}

// Add appends a profile to the store.
func (s *InMemoryStore) Add(p Profile) {
	s.profiles = append(s.profiles, p)
}

// FindByUserID returns the first profile whose userId matches.
func (s *InMemoryStore) FindByUserID(ctx context.Context, userID any) (*Profile, error) {
	for i := range s.profiles {
		if s.profiles[i].UserID == userID {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, nil
}

// FindByID returns the first profile keyed directly by the given id.
func (s *InMemoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Raw returns stored profiles as documents under the primary collection name.
func (s *InMemoryStore) Raw(ctx context.Context, limit int64) (map[string][]bson.M, error) {
	out := map[string][]bson.M{}
	for _, name := range s.names {
		out[name] = []bson.M{}
	}
	for i := range s.profiles {
		if int64(len(out[s.names[0]])) >= limit {
			break
		}
		doc := bson.M{"_id": s.profiles[i].ID}
		if s.profiles[i].UserID != nil {
			doc["userId"] = s.profiles[i].UserID
		}
		out[s.names[0]] = append(out[s.names[0]], doc)
	}
	return out, nil
}

// CollectionNames returns the logical collection names in lookup order.
func (s *InMemoryStore) CollectionNames() []string {
	return append([]string(nil), s.names...)
}
