// Package listing provides the rental listing model and catalog repositories.
package listing

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultUniversityDistanceKm is the distance assumed for listings that do not
// record a distance to their nearest university. Treated as "far".
const DefaultUniversityDistanceKm = 100.0

// Listing is one rentable property record as stored in the catalog.
// Fields the scoring engine reads are typed; everything else the document
// carries is preserved in Extra so responses can round-trip the full record.
type Listing struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyName       string             `bson:"propertyName" json:"propertyName"`
	PropertyType       string             `bson:"propertyType" json:"propertyType"`
	MonthlyRent        float64            `bson:"monthlyRent" json:"monthlyRent"`
	City               string             `bson:"city,omitempty" json:"city,omitempty"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	Province           string             `bson:"province,omitempty" json:"province,omitempty"`
	GenderPreference   string             `bson:"genderPreference,omitempty" json:"genderPreference,omitempty"`
	NearestUniversity  string             `bson:"nearestUniversity,omitempty" json:"nearestUniversity,omitempty"`
	UniversityDistance *float64           `bson:"universityDistance,omitempty" json:"universityDistance,omitempty"`
	Bedrooms           int                `bson:"bedrooms,omitempty" json:"bedrooms"`
	Bathrooms          int                `bson:"bathrooms,omitempty" json:"bathrooms"`
	EloRating          float64            `bson:"eloRating,omitempty" json:"eloRating"`
	Images             []string           `bson:"images,omitempty" json:"images,omitempty"`

	// Extra captures document fields not mapped above.
	Extra bson.M `bson:",inline" json:"-"`
}

// GenderPref returns the listing's gender preference, defaulting to "mixed"
// when the field is absent.
func (l *Listing) GenderPref() string {
	if l.GenderPreference == "" {
		return "mixed"
	}
	return l.GenderPreference
}

// UniversityDistanceKm returns the recorded distance to the nearest
// university, or DefaultUniversityDistanceKm when none is recorded.
func (l *Listing) UniversityDistanceKm() float64 {
	if l.UniversityDistance == nil {
		return DefaultUniversityDistanceKm
	}
	return *l.UniversityDistance
}

// Document returns the listing as a bson document: every typed field plus the
// preserved unmapped fields. Used at the response boundary; the scoring engine
// never touches it.
func (l *Listing) Document() bson.M {
	doc := bson.M{}
	for k, v := range l.Extra {
		doc[k] = v
	}
	doc["_id"] = l.ID
	doc["propertyName"] = l.PropertyName
	doc["propertyType"] = l.PropertyType
	doc["monthlyRent"] = l.MonthlyRent
	doc["bedrooms"] = l.Bedrooms
	doc["bathrooms"] = l.Bathrooms
	doc["eloRating"] = l.EloRating
	if l.City != "" {
		doc["city"] = l.City
	}
	if l.Address != "" {
		doc["address"] = l.Address
	}
	if l.Province != "" {
		doc["province"] = l.Province
	}
	if l.GenderPreference != "" {
		doc["genderPreference"] = l.GenderPreference
	}
	if l.NearestUniversity != "" {
		doc["nearestUniversity"] = l.NearestUniversity
	}
	if l.UniversityDistance != nil {
		doc["universityDistance"] = *l.UniversityDistance
	}
	if l.Images != nil {
		doc["images"] = l.Images
	}
	return doc
}
