package api

import (
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/uninest/recommender/internal/listing"
	"github.com/uninest/recommender/internal/profile"
	"github.com/uninest/recommender/internal/recommend"
)

// RecommendHandlers holds dependencies for the recommendation endpoint.
type RecommendHandlers struct {
	resolver *profile.Resolver
	listings listing.Repository
	engine   *recommend.Engine
}

// NewRecommendHandlers creates a new RecommendHandlers instance.
func NewRecommendHandlers(resolver *profile.Resolver, listings listing.Repository, engine *recommend.Engine) *RecommendHandlers {
	return &RecommendHandlers{
		resolver: resolver,
		listings: listings,
		engine:   engine,
	}
}

// GetRecommendations handles GET /recommendations/{studentID}.
//
// The requester's profile selects the ranking path: a resolved profile runs
// the full multi-factor scoring over the whole catalog, absence runs the
// popularity fallback over the top-rated listings. Both return an ordered
// JSON array of listing documents with a score and explanation attached; an
// empty catalog yields an empty array. Store and scoring failures surface as
// one internal error category.
func (h *RecommendHandlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := r.PathValue("studentID")
	if studentID == "" {
		WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "studentID is required")
		return
	}

	slog.InfoContext(ctx, "getting recommendations", "requester_id", studentID)

	p, err := h.resolver.Resolve(ctx, studentID)
	if err != nil {
		slog.ErrorContext(ctx, "profile lookup failed", "requester_id", studentID, "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"Error generating recommendations: "+err.Error())
		return
	}

	if p == nil {
		h.fallback(w, r, studentID)
		return
	}

	all, err := h.listings.All(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listing fetch failed", "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"Error generating recommendations: "+err.Error())
		return
	}

	scored := h.engine.Recommend(p, all)
	slog.InfoContext(ctx, "returning personalized recommendations",
		"requester_id", studentID, "evaluated", len(all), "returned", len(scored))

	out := make([]map[string]any, 0, len(scored))
	for i := range scored {
		doc := scoredDocument(&scored[i])
		doc["matchReasons"] = scored[i].Reasons
		out = append(out, doc)
	}
	WriteJSON(w, r, http.StatusOK, out)
}

// fallback serves the popularity-only ranking when no profile resolves.
func (h *RecommendHandlers) fallback(w http.ResponseWriter, r *http.Request, studentID string) {
	ctx := r.Context()
	slog.InfoContext(ctx, "no profile found, using popularity fallback", "requester_id", studentID)

	top, err := h.listings.TopByRating(ctx, int64(h.engine.ResultSize()))
	if err != nil {
		slog.ErrorContext(ctx, "listing fetch failed", "error", err)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"Error generating recommendations: "+err.Error())
		return
	}

	scored := h.engine.PopularityFallback(top)
	out := make([]map[string]any, 0, len(scored))
	for i := range scored {
		doc := scoredDocument(&scored[i])
		doc["matchReason"] = recommend.FallbackReason
		out = append(out, doc)
	}
	WriteJSON(w, r, http.StatusOK, out)
}

// scoredDocument renders one scored listing as a response document with all
// identifier types flattened to strings.
func scoredDocument(sl *recommend.ScoredListing) map[string]any {
	doc := StringifyIDs(sl.Listing.Document()).(bson.M)
	doc["score"] = sl.Score
	return doc
}
