package profile

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolver locates at most one preference profile for a requester identifier.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given profile store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve locates the profile for the given requester identifier.
//
// The identifier is parsed as an ObjectID when possible; otherwise the raw
// string is used as the userId query value. A malformed identifier is
// recovered here and never surfaced. If no profile matches by userId, the
// lookup is retried against the profile's own _id, which covers profiles
// keyed directly by requester.
//
// Returns (nil, nil) when no profile exists; only store failures are errors.
func (r *Resolver) Resolve(ctx context.Context, requesterID string) (*Profile, error) {
	var userID any = requesterID
	oid, oidErr := primitive.ObjectIDFromHex(requesterID)
	if oidErr == nil {
		userID = oid
	} else {
		slog.DebugContext(ctx, "requester id is not an object id, using raw string",
			"requester_id", requesterID)
	}

	p, err := r.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	// Some profiles are keyed by the requester id itself.
	if oidErr == nil {
		p, err = r.store.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}

	slog.DebugContext(ctx, "no profile found for requester", "requester_id", requesterID)
	return nil, nil
}
