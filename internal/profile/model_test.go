package profile

import (
	"math"
	"testing"
)

func TestProfileBudgetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantMin float64
		wantMax float64
	}{
		{
			name:    "no price range",
			profile: Profile{},
			wantMin: DefaultMinPrice,
			wantMax: DefaultMaxPrice,
		},
		{
			name:    "zero max means no cap",
			profile: Profile{PriceRange: &PriceRange{Min: 5000}},
			wantMin: 5000,
			wantMax: DefaultMaxPrice,
		},
		{
			name:    "explicit range",
			profile: Profile{PriceRange: &PriceRange{Min: 10000, Max: 35000}},
			wantMin: 10000,
			wantMax: 35000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.MinPrice(); math.Abs(got-tt.wantMin) > 1e-9 {
				t.Errorf("MinPrice: expected %f, got %f", tt.wantMin, got)
			}
			if got := tt.profile.MaxPrice(); math.Abs(got-tt.wantMax) > 1e-9 {
				t.Errorf("MaxPrice: expected %f, got %f", tt.wantMax, got)
			}
		})
	}
}

func TestProfileRoomDefaults(t *testing.T) {
	var p Profile
	if got := p.MinBeds(); got != DefaultMinRooms {
		t.Errorf("expected default min bedrooms %d, got %d", DefaultMinRooms, got)
	}
	if got := p.MinBaths(); got != DefaultMinRooms {
		t.Errorf("expected default min bathrooms %d, got %d", DefaultMinRooms, got)
	}

	two := 2
	zero := 0
	p = Profile{MinBedrooms: &two, MinBathrooms: &zero}
	if got := p.MinBeds(); got != 2 {
		t.Errorf("expected min bedrooms 2, got %d", got)
	}
	// An explicit zero is respected, unlike a missing value.
	if got := p.MinBaths(); got != 0 {
		t.Errorf("expected min bathrooms 0, got %d", got)
	}
}
