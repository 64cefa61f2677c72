package recommend

import (
	"math/rand"
	"sort"
	"time"

	"github.com/uninest/recommender/internal/listing"
	"github.com/uninest/recommender/internal/profile"
)

// Fallback scoring constants. When no profile resolves, listings are ranked
// purely by popularity and scored as base + (elo / divisor) * share.
const (
	FallbackBase       = 0.5
	FallbackEloDivisor = 10000.0
	FallbackEloShare   = 0.3

	// FallbackReason is the single explanation attached to fallback results.
	FallbackReason = "Popular listing recommendation"

	// GenericReason substitutes when no factor produced an explanation.
	GenericReason = "Recommended listing"

	// maxReasons caps the explanations kept per listing, in factor order.
	maxReasons = 3
)

// RandFunc returns a uniform sample in [0, 1). Injected so tests can pin the
// perturbation term while production uses a seeded source.
type RandFunc func() float64

// ScoredListing is the ephemeral per-request projection of a listing with its
// composite score and explanations. Constructed, sorted, truncated, and
// discarded within a single request; never persisted.
type ScoredListing struct {
	Listing listing.Listing
	Score   float64
	Reasons []string
}

// Engine computes composite scores and rankings. It is safe for concurrent
// use as long as the injected RandFunc is; the default source is.
type Engine struct {
	weights Weights
	tuning  Tuning
	rand    RandFunc
	metrics *Metrics
}

// NewEngine creates an engine with the given weights, tuning, randomness
// source, and optional metrics (nil disables instrumentation). A nil RandFunc
// falls back to a time-seeded source.
func NewEngine(weights Weights, tuning Tuning, rnd RandFunc, metrics *Metrics) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano())).Float64
	}
	return &Engine{
		weights: weights,
		tuning:  tuning,
		rand:    rnd,
		metrics: metrics,
	}
}

// Recommend scores every listing against the profile and returns the top
// results ordered by composite score descending. An empty catalog yields an
// empty slice.
func (e *Engine) Recommend(p *profile.Profile, listings []listing.Listing) []ScoredListing {
	start := time.Now()

	scored := make([]ScoredListing, 0, len(listings))
	for i := range listings {
		scored = append(scored, e.scoreListing(p, &listings[i]))
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	scored = e.truncate(scored)

	if e.metrics != nil {
		e.metrics.ObserveRecommendation(PathPersonalized, len(listings), time.Since(start).Seconds())
	}
	return scored
}

// scoreListing computes the seven sub-scores in fixed order, combines them
// via the factor weights, perturbs the sum, and clamps to [0, 1]. Reasons
// are kept in evaluation order; earlier factors win when truncating.
func (e *Engine) scoreListing(p *profile.Profile, l *listing.Listing) ScoredListing {
	var reasons []string
	collect := func(reason string) {
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	typeScore, reason := PropertyTypeScore(p.PreferredPropertyType, l.PropertyType)
	collect(reason)

	priceScore, reason := PriceScore(l.MonthlyRent, p.MinPrice(), p.MaxPrice())
	collect(reason)

	locationScore, reason := LocationScore(p.PreferredAreas, l.City, l.Address, l.Province, e.tuning)
	collect(reason)

	genderScore, reason := GenderScore(p.Gender, l.GenderPref())
	collect(reason)

	universityScore, reason := UniversityScore(p.University, l.NearestUniversity, l.UniversityDistanceKm(), e.tuning)
	collect(reason)

	featuresScore, reason := FeaturesScore(l.Bedrooms, l.Bathrooms, p.MinBeds(), p.MinBaths())
	collect(reason)

	popularityScore, reason := PopularityScore(l.EloRating, e.tuning.PopularityCeiling)
	collect(reason)

	final := typeScore*e.weights.PropertyType +
		priceScore*e.weights.Price +
		locationScore*e.weights.Location +
		genderScore*e.weights.Gender +
		universityScore*e.weights.University +
		featuresScore*e.weights.Features +
		popularityScore*e.weights.Popularity

	// Uniform tie-breaker in [-perturbation, +perturbation]. Intentional
	// non-determinism across identical requests.
	final += (e.rand()*2 - 1) * e.tuning.Perturbation
	final = clamp01(final)

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	if len(reasons) == 0 {
		reasons = []string{GenericReason}
	}

	return ScoredListing{Listing: *l, Score: final, Reasons: reasons}
}

// PopularityFallback ranks listings purely by eloRating when no preference
// signal exists. Each result carries a score derived from its rating and a
// single fixed explanation. An empty catalog yields an empty slice.
func (e *Engine) PopularityFallback(listings []listing.Listing) []ScoredListing {
	start := time.Now()

	sorted := append([]listing.Listing(nil), listings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EloRating > sorted[j].EloRating
	})

	scored := make([]ScoredListing, 0, len(sorted))
	for i := range sorted {
		scored = append(scored, ScoredListing{
			Listing: sorted[i],
			Score:   FallbackBase + sorted[i].EloRating/FallbackEloDivisor*FallbackEloShare,
			Reasons: []string{FallbackReason},
		})
	}
	scored = e.truncate(scored)

	if e.metrics != nil {
		e.metrics.ObserveRecommendation(PathFallback, len(listings), time.Since(start).Seconds())
	}
	return scored
}

// ResultSize returns the fixed number of listings returned per request.
func (e *Engine) ResultSize() int {
	return e.tuning.ResultSize
}

// truncate caps results at the configured size; fewer results pass through
// unchanged, never padded.
func (e *Engine) truncate(scored []ScoredListing) []ScoredListing {
	if len(scored) > e.tuning.ResultSize {
		return scored[:e.tuning.ResultSize]
	}
	return scored
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
