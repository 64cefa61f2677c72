// Package recommend implements the multi-factor scoring and ranking engine
// for rental listing recommendations.
//
// Given one preference profile and a snapshot of the listing catalog, the
// engine computes seven weighted sub-scores per listing (property type,
// price, location, gender, university proximity, features, popularity),
// combines them into a composite score in [0, 1], perturbs the result by a
// small uniform term to break ties, and returns the top listings with up to
// three human-readable match reasons. When no profile exists, a
// popularity-only fallback ranking is produced instead.
//
// The engine is a pure function of its inputs plus one injected randomness
// source; it never mutates stored state and holds nothing across requests.
package recommend
