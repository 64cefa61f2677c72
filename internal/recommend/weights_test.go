package recommend

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// TestPropertyTypeScore tests property type matching.
func TestPropertyTypeScore(t *testing.T) {
	tests := []struct {
		name        string
		preferred   string
		listingType string
		expected    float64
		wantReason  bool
	}{
		{
			name:        "exact match",
			preferred:   "apartment",
			listingType: "apartment",
			expected:    1.0,
			wantReason:  true,
		},
		{
			name:        "substring match listing in preferred",
			preferred:   "shared apartment",
			listingType: "apartment",
			expected:    0.7,
			wantReason:  true,
		},
		{
			name:        "substring match preferred in listing",
			preferred:   "hostel",
			listingType: "Boys Hostel",
			expected:    0.7,
			wantReason:  true,
		},
		{
			name:        "no match",
			preferred:   "apartment",
			listingType: "hostel",
			expected:    0.0,
			wantReason:  false,
		},
		{
			name:        "no preference skips factor",
			preferred:   "",
			listingType: "apartment",
			expected:    0.0,
			wantReason:  false,
		},
		{
			name:        "missing listing type",
			preferred:   "apartment",
			listingType: "",
			expected:    0.0,
			wantReason:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reason := PropertyTypeScore(tt.preferred, tt.listingType)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
			if (reason != "") != tt.wantReason {
				t.Errorf("expected reason presence %v, got %q", tt.wantReason, reason)
			}
		})
	}
}

// TestPriceScore tests budget matching, including the overage steps.
func TestPriceScore(t *testing.T) {
	tests := []struct {
		name     string
		rent     float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "within budget", rent: 30000, min: 20000, max: 40000, expected: 1.0},
		{name: "at lower bound", rent: 20000, min: 20000, max: 40000, expected: 1.0},
		{name: "at upper bound", rent: 40000, min: 20000, max: 40000, expected: 1.0},
		{name: "below budget", rent: 15000, min: 20000, max: 40000, expected: 0.9},
		{name: "up to 10 percent over", rent: 43000, min: 20000, max: 40000, expected: 0.7},
		{name: "up to 20 percent over", rent: 47000, min: 20000, max: 40000, expected: 0.4},
		{name: "far over budget", rent: 60000, min: 20000, max: 40000, expected: 0.0},
		{name: "free listing", rent: 0, min: 0, max: 40000, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := PriceScore(tt.rent, tt.min, tt.max)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
		})
	}
}

// TestPriceScoreMonotonicity verifies that lowering an above-budget rent into
// the budget never decreases the score.
func TestPriceScoreMonotonicity(t *testing.T) {
	min, max := 20000.0, 40000.0
	prev := -1.0
	for _, rent := range []float64{60000, 47000, 43000, 40000, 30000} {
		score, _ := PriceScore(rent, min, max)
		if score < prev {
			t.Fatalf("score decreased from %f to %f when rent dropped to %f", prev, score, rent)
		}
		prev = score
	}
}

// TestLocationScore tests area matching against location fields.
func TestLocationScore(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		name     string
		areas    []string
		city     string
		address  string
		province string
		expected float64
	}{
		{
			name:     "city match",
			areas:    []string{"Colombo"},
			city:     "Colombo",
			expected: 1.0,
		},
		{
			name:     "case-insensitive address match",
			areas:    []string{"kandy"},
			address:  "12 Kandy Road",
			expected: 1.0,
		},
		{
			name:     "province match",
			areas:    []string{"Western"},
			province: "Western Province",
			expected: 1.0,
		},
		{
			name:     "unmatched with location text",
			areas:    []string{"Galle"},
			city:     "Colombo",
			expected: tuning.LocationUnmatched,
		},
		{
			name:     "unmatched without location text",
			areas:    []string{"Galle"},
			expected: 0.0,
		},
		{
			name:     "no preference is neutral",
			areas:    nil,
			city:     "Colombo",
			expected: tuning.LocationNoPreference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := LocationScore(tt.areas, tt.city, tt.address, tt.province, tuning)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
		})
	}
}

// TestGenderScore tests gender preference matching.
func TestGenderScore(t *testing.T) {
	tests := []struct {
		name        string
		gender      string
		listingPref string
		expected    float64
	}{
		{name: "no stated gender", gender: "", listingPref: "boys", expected: 1.0},
		{name: "mixed listing", gender: "male", listingPref: "mixed", expected: 1.0},
		{name: "mixed listing uppercase", gender: "female", listingPref: "Mixed", expected: 1.0},
		{name: "male and boys-only", gender: "male", listingPref: "boys", expected: 1.0},
		{name: "female and girls-only", gender: "female", listingPref: "girls", expected: 1.0},
		{name: "male and girls-only", gender: "male", listingPref: "girls", expected: 0.0},
		{name: "female and boys-only", gender: "female", listingPref: "boys", expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := GenderScore(tt.gender, tt.listingPref)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
		})
	}
}

// TestUniversityScore tests university proximity scoring.
func TestUniversityScore(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		name              string
		university        string
		listingUniversity string
		distanceKm        float64
		expected          float64
	}{
		{
			name:              "exact university match",
			university:        "uoc",
			listingUniversity: "uoc",
			distanceKm:        12,
			expected:          1.0,
		},
		{
			name:       "under 3km",
			university: "uoc",
			distanceKm: 2.5,
			expected:   0.9,
		},
		{
			name:       "under 5km",
			university: "uoc",
			distanceKm: 4,
			expected:   0.8,
		},
		{
			name:       "under 10km",
			university: "uoc",
			distanceKm: 9,
			expected:   0.6,
		},
		{
			name:       "10km or more",
			university: "uoc",
			distanceKm: 10,
			expected:   tuning.UniversityFar,
		},
		{
			name:       "unknown distance defaults far",
			university: "uoc",
			distanceKm: 100,
			expected:   tuning.UniversityFar,
		},
		{
			name:       "no preference is neutral",
			university: "",
			distanceKm: 1,
			expected:   tuning.UniversityNoPreference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := UniversityScore(tt.university, tt.listingUniversity, tt.distanceKm, tuning)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
		})
	}
}

// TestFeaturesScore tests bedroom/bathroom minimum matching.
func TestFeaturesScore(t *testing.T) {
	tests := []struct {
		name      string
		bedrooms  int
		bathrooms int
		minBeds   int
		minBaths  int
		expected  float64
	}{
		{name: "both minimums met", bedrooms: 2, bathrooms: 1, minBeds: 1, minBaths: 1, expected: 1.0},
		{name: "only bedrooms met", bedrooms: 2, bathrooms: 0, minBeds: 1, minBaths: 1, expected: 0.7},
		{name: "only bathrooms met", bedrooms: 0, bathrooms: 2, minBeds: 1, minBaths: 1, expected: 0.5},
		{name: "neither met", bedrooms: 0, bathrooms: 0, minBeds: 1, minBaths: 1, expected: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := FeaturesScore(tt.bedrooms, tt.bathrooms, tt.minBeds, tt.minBaths)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
		})
	}
}

// TestPopularityScore tests eloRating normalization and saturation.
func TestPopularityScore(t *testing.T) {
	tests := []struct {
		name       string
		elo        float64
		expected   float64
		wantReason bool
	}{
		{name: "zero rating", elo: 0, expected: 0.0, wantReason: false},
		{name: "mid rating", elo: 1500, expected: 0.5, wantReason: false},
		{name: "high rating earns reason", elo: 2700, expected: 0.9, wantReason: true},
		{name: "rating at ceiling", elo: 3000, expected: 1.0, wantReason: true},
		{name: "rating above ceiling clamps", elo: 4500, expected: 1.0, wantReason: true},
		{name: "negative rating clamps to zero", elo: -100, expected: 0.0, wantReason: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reason := PopularityScore(tt.elo, 3000)
			if math.Abs(score-tt.expected) > epsilon {
				t.Errorf("expected score %f, got %f", tt.expected, score)
			}
			if (reason != "") != tt.wantReason {
				t.Errorf("expected reason presence %v, got %q", tt.wantReason, reason)
			}
		})
	}
}

// TestSubScoresStayInRange sweeps representative inputs and verifies every
// sub-score lands in [0, 1] before weighting.
func TestSubScoresStayInRange(t *testing.T) {
	tuning := DefaultTuning()
	check := func(name string, score float64) {
		t.Helper()
		if score < 0 || score > 1 {
			t.Errorf("%s out of range: %f", name, score)
		}
	}

	for _, rent := range []float64{0, 100, 25000, 44000, 48000, 1e7} {
		score, _ := PriceScore(rent, 20000, 40000)
		check("price", score)
	}
	for _, elo := range []float64{-50, 0, 1500, 3000, 99999} {
		score, _ := PopularityScore(elo, tuning.PopularityCeiling)
		check("popularity", score)
	}
	for _, d := range []float64{0, 2.9, 4.9, 9.9, 10, 100} {
		score, _ := UniversityScore("uoc", "", d, tuning)
		check("university", score)
	}
}
