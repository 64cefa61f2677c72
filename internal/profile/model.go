// Package profile provides the requester preference profile, its store, and
// the resolver that locates a profile for a requester identifier.
package profile

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when a profile omits the corresponding field.
const (
	DefaultMinPrice = 0.0
	DefaultMaxPrice = 100000.0
	DefaultMinRooms = 1
)

// PriceRange is the requester's acceptable monthly rent range.
type PriceRange struct {
	Min float64 `bson:"min,omitempty" json:"min"`
	Max float64 `bson:"max,omitempty" json:"max"`
}

// Profile is stored preference data for one requester. At most one profile
// pairs with a requester; every field except the identifiers is optional.
// Profiles are written by external systems and read-only here.
type Profile struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                any                `bson:"userId,omitempty" json:"userId,omitempty"`
	PreferredPropertyType string             `bson:"preferredPropertyType,omitempty" json:"preferredPropertyType,omitempty"`
	PriceRange            *PriceRange        `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
	PreferredAreas        []string           `bson:"preferredAreas,omitempty" json:"preferredAreas,omitempty"`
	Gender                string             `bson:"gender,omitempty" json:"gender,omitempty"`
	University            string             `bson:"university,omitempty" json:"university,omitempty"`
	MinBedrooms           *int               `bson:"minBedrooms,omitempty" json:"minBedrooms,omitempty"`
	MinBathrooms          *int               `bson:"minBathrooms,omitempty" json:"minBathrooms,omitempty"`
}

// MinPrice returns the lower bound of the budget, defaulting to 0.
func (p *Profile) MinPrice() float64 {
	if p.PriceRange == nil {
		return DefaultMinPrice
	}
	return p.PriceRange.Min
}

// MaxPrice returns the upper bound of the budget. A missing range or a zero
// max means "no effective cap" and falls back to the default.
func (p *Profile) MaxPrice() float64 {
	if p.PriceRange == nil || p.PriceRange.Max == 0 {
		return DefaultMaxPrice
	}
	return p.PriceRange.Max
}

// MinBeds returns the minimum bedroom count, defaulting to 1.
func (p *Profile) MinBeds() int {
	if p.MinBedrooms == nil {
		return DefaultMinRooms
	}
	return *p.MinBedrooms
}

// MinBaths returns the minimum bathroom count, defaulting to 1.
func (p *Profile) MinBaths() int {
	if p.MinBathrooms == nil {
		return DefaultMinRooms
	}
	return *p.MinBathrooms
}
