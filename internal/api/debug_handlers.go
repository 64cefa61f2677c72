package api

import (
	"net/http"

	"github.com/uninest/recommender/internal/listing"
	"github.com/uninest/recommender/internal/profile"
)

// debugSampleSize caps the documents returned by the debug endpoints.
const debugSampleSize = 5

// DebugHandlers exposes raw store contents for troubleshooting data issues.
// Errors are reported inline in the body rather than via status codes so a
// broken store is still inspectable from a browser.
type DebugHandlers struct {
	listings listing.Repository
	profiles profile.Store
}

// NewDebugHandlers creates a new DebugHandlers instance.
func NewDebugHandlers(listings listing.Repository, profiles profile.Store) *DebugHandlers {
	return &DebugHandlers{listings: listings, profiles: profiles}
}

// GetListings handles GET /debug/listings - returns the first few raw
// listing documents.
func (h *DebugHandlers) GetListings(w http.ResponseWriter, r *http.Request) {
	docs, err := h.listings.Raw(r.Context(), debugSampleSize)
	if err != nil {
		WriteJSON(w, r, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}
	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, StringifyIDs(doc))
	}
	WriteJSON(w, r, http.StatusOK, map[string]any{"listings": out})
}

// GetProfiles handles GET /debug/profiles - returns the first few raw
// profile documents from each physical collection, plus the collection
// names in lookup order.
func (h *DebugHandlers) GetProfiles(w http.ResponseWriter, r *http.Request) {
	byCollection, err := h.profiles.Raw(r.Context(), debugSampleSize)
	if err != nil {
		WriteJSON(w, r, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}
	out := map[string]any{"collections": h.profiles.CollectionNames()}
	for name, docs := range byCollection {
		converted := make([]any, 0, len(docs))
		for _, doc := range docs {
			converted = append(converted, StringifyIDs(doc))
		}
		out[name] = converted
	}
	WriteJSON(w, r, http.StatusOK, out)
}
