package recommend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Weights defines the contribution of each scoring factor to the composite
// score. The seven weights sum to 1.0, so a listing scoring 1.0 on every
// factor has a pre-perturbation composite of exactly 1.0.
type Weights struct {
	PropertyType float64 `json:"property_type"` // default: 0.25
	Price        float64 `json:"price"`         // default: 0.20
	Location     float64 `json:"location"`      // default: 0.20
	Gender       float64 `json:"gender"`        // default: 0.15
	University   float64 `json:"university"`    // default: 0.10
	Features     float64 `json:"features"`      // default: 0.05
	Popularity   float64 `json:"popularity"`    // default: 0.05
}

// Tuning holds the empirically chosen scoring constants that are not factor
// weights. The neutral defaults encode "no preference given, don't penalize"
// versus "preference given but unmatched, partial credit"; they carry no
// principled justification and are kept configurable pending product review.
type Tuning struct {
	// LocationNoPreference is the location sub-score when the requester
	// listed no preferred areas at all.
	LocationNoPreference float64 `json:"location_no_preference"` // default: 0.7

	// LocationUnmatched is the location sub-score when preferred areas were
	// given, none matched, but the listing has location text.
	LocationUnmatched float64 `json:"location_unmatched"` // default: 0.3

	// UniversityNoPreference is the university sub-score when the requester
	// named no university.
	UniversityNoPreference float64 `json:"university_no_preference"` // default: 0.7

	// UniversityFar is the university sub-score at 10km or more.
	UniversityFar float64 `json:"university_far"` // default: 0.3

	// Perturbation bounds the uniform tie-breaking term added to every
	// composite score: a sample from [-Perturbation, +Perturbation].
	Perturbation float64 `json:"perturbation"` // default: 0.02

	// ResultSize is the fixed number of listings returned per request.
	ResultSize int `json:"result_size"` // default: 6

	// PopularityCeiling is the eloRating at which the popularity sub-score
	// saturates at 1.0.
	PopularityCeiling float64 `json:"popularity_ceiling"` // default: 3000
}

// CalibrationConfig is the JSON structure of the calibration file.
type CalibrationConfig struct {
	Version string  `json:"version"`
	Weights Weights `json:"weights"`
	Tuning  Tuning  `json:"tuning"`
}

// DefaultWeights returns the default factor weights.
func DefaultWeights() Weights {
	return Weights{
		PropertyType: 0.25,
		Price:        0.20,
		Location:     0.20,
		Gender:       0.15,
		University:   0.10,
		Features:     0.05,
		Popularity:   0.05,
	}
}

// DefaultTuning returns the default scoring constants.
func DefaultTuning() Tuning {
	return Tuning{
		LocationNoPreference:   0.7,
		LocationUnmatched:      0.3,
		UniversityNoPreference: 0.7,
		UniversityFar:          0.3,
		Perturbation:           0.02,
		ResultSize:             6,
		PopularityCeiling:      3000,
	}
}

// Sum returns the total of all factor weights.
func (w Weights) Sum() float64 {
	return w.PropertyType + w.Price + w.Location + w.Gender +
		w.University + w.Features + w.Popularity
}

// LoadCalibration loads weights and tuning overrides from a JSON file,
// merging partial configurations over the defaults. An empty path returns the
// defaults. On a read or parse failure the defaults are returned alongside
// the error so the caller can degrade gracefully.
func LoadCalibration(path string) (Weights, Tuning, error) {
	weights := DefaultWeights()
	tuning := DefaultTuning()

	if path == "" {
		return weights, tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read calibration file, using defaults",
			"path", path, "error", err)
		return weights, tuning, fmt.Errorf("read calibration file: %w", err)
	}

	var cfg CalibrationConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("failed to parse calibration file, using defaults",
			"path", path, "error", err)
		return weights, tuning, fmt.Errorf("parse calibration file: %w", err)
	}

	merged := mergeWeights(weights, cfg.Weights)
	mergedTuning := mergeTuning(tuning, cfg.Tuning)
	logOverrides(weights, merged, tuning, mergedTuning)

	return merged, mergedTuning, nil
}

// mergeWeights applies non-zero override values over the base weights,
// allowing partial calibration files.
func mergeWeights(base, override Weights) Weights {
	out := base
	if override.PropertyType != 0 {
		out.PropertyType = override.PropertyType
	}
	if override.Price != 0 {
		out.Price = override.Price
	}
	if override.Location != 0 {
		out.Location = override.Location
	}
	if override.Gender != 0 {
		out.Gender = override.Gender
	}
	if override.University != 0 {
		out.University = override.University
	}
	if override.Features != 0 {
		out.Features = override.Features
	}
	if override.Popularity != 0 {
		out.Popularity = override.Popularity
	}
	return out
}

// mergeTuning applies non-zero override values over the base tuning.
func mergeTuning(base, override Tuning) Tuning {
	out := base
	if override.LocationNoPreference != 0 {
		out.LocationNoPreference = override.LocationNoPreference
	}
	if override.LocationUnmatched != 0 {
		out.LocationUnmatched = override.LocationUnmatched
	}
	if override.UniversityNoPreference != 0 {
		out.UniversityNoPreference = override.UniversityNoPreference
	}
	if override.UniversityFar != 0 {
		out.UniversityFar = override.UniversityFar
	}
	if override.Perturbation != 0 {
		out.Perturbation = override.Perturbation
	}
	if override.ResultSize != 0 {
		out.ResultSize = override.ResultSize
	}
	if override.PopularityCeiling != 0 {
		out.PopularityCeiling = override.PopularityCeiling
	}
	return out
}

// logOverrides logs which values differ from the defaults after a merge.
func logOverrides(defWeights, weights Weights, defTuning, tuning Tuning) {
	var overrides []string
	add := func(name string, def, got float64) {
		if got != def {
			overrides = append(overrides, fmt.Sprintf("%s: %.3g -> %.3g", name, def, got))
		}
	}
	add("weights.property_type", defWeights.PropertyType, weights.PropertyType)
	add("weights.price", defWeights.Price, weights.Price)
	add("weights.location", defWeights.Location, weights.Location)
	add("weights.gender", defWeights.Gender, weights.Gender)
	add("weights.university", defWeights.University, weights.University)
	add("weights.features", defWeights.Features, weights.Features)
	add("weights.popularity", defWeights.Popularity, weights.Popularity)
	add("tuning.location_no_preference", defTuning.LocationNoPreference, tuning.LocationNoPreference)
	add("tuning.location_unmatched", defTuning.LocationUnmatched, tuning.LocationUnmatched)
	add("tuning.university_no_preference", defTuning.UniversityNoPreference, tuning.UniversityNoPreference)
	add("tuning.university_far", defTuning.UniversityFar, tuning.UniversityFar)
	add("tuning.perturbation", defTuning.Perturbation, tuning.Perturbation)
	add("tuning.result_size", float64(defTuning.ResultSize), float64(tuning.ResultSize))
	add("tuning.popularity_ceiling", defTuning.PopularityCeiling, tuning.PopularityCeiling)

	if len(overrides) > 0 {
		slog.Info("loaded scoring calibration with overrides", "overrides", overrides)
	} else {
		slog.Info("loaded scoring calibration (using all defaults)")
	}
}
