package recommend

import (
	"fmt"
	"strconv"
	"strings"
)

// Score values shared by several factors.
const (
	scoreExact   = 1.0
	scorePartial = 0.7
)

// fmtAmount renders a numeric amount without trailing zeros, matching the
// reason templates ("LKR 30000", "2.5km").
func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PropertyTypeScore scores how well a listing's property type matches the
// preferred type. Exact equality scores 1.0; a case-insensitive substring
// match either way scores 0.7. With no preference the factor is skipped
// (score 0, no reason).
func PropertyTypeScore(preferred, listingType string) (float64, string) {
	if preferred == "" || listingType == "" {
		return 0, ""
	}
	if listingType == preferred {
		return scoreExact, "Perfect property type match: " + listingType
	}
	lt := strings.ToLower(listingType)
	pt := strings.ToLower(preferred)
	if strings.Contains(lt, pt) || strings.Contains(pt, lt) {
		return scorePartial, "Similar property type: " + listingType
	}
	return 0, ""
}

// PriceScore scores the monthly rent against the budget [min, max].
// Within budget is a perfect match; below budget is nearly perfect (cheaper
// is never penalized); above budget decays with the overage and hits 0 past
// 20% over max.
func PriceScore(rent, min, max float64) (float64, string) {
	switch {
	case rent >= min && rent <= max:
		return 1.0, "Within your budget: LKR " + fmtAmount(rent)
	case rent < min:
		return 0.9, "Below your budget: LKR " + fmtAmount(rent)
	}
	overage := rent - max
	switch {
	case overage <= max*0.1:
		return 0.7, "Slightly above budget: LKR " + fmtAmount(rent)
	case overage <= max*0.2:
		return 0.4, "Above budget: LKR " + fmtAmount(rent)
	}
	return 0, ""
}

// LocationScore scores the listing's location text against the preferred
// areas. Any area appearing case-insensitively in the city, address, or
// province is a full match. With areas given but unmatched, a listing that
// has any location text earns partial credit; with no areas given at all the
// neutral no-preference score applies instead, so unstated preferences are
// never penalized.
func LocationScore(areas []string, city, address, province string, tuning Tuning) (float64, string) {
	if len(areas) == 0 {
		return tuning.LocationNoPreference, ""
	}

	cityLower := strings.ToLower(city)
	addressLower := strings.ToLower(address)
	provinceLower := strings.ToLower(province)

	for _, area := range areas {
		areaLower := strings.ToLower(area)
		if areaLower == "" {
			continue
		}
		if strings.Contains(cityLower, areaLower) ||
			strings.Contains(addressLower, areaLower) ||
			strings.Contains(provinceLower, areaLower) {
			return 1.0, "Location match: " + area
		}
	}

	if city != "" || address != "" {
		return tuning.LocationUnmatched, ""
	}
	return 0, ""
}

// GenderScore scores the listing's gender preference against the requester's
// gender. No stated gender or a mixed listing always matches; a boys-only
// listing matches male requesters and a girls-only listing matches female
// requesters; everything else is a hard mismatch.
func GenderScore(gender, listingPref string) (float64, string) {
	pref := strings.ToLower(listingPref)
	if gender == "" || pref == "mixed" {
		return 1.0, ""
	}
	switch {
	case strings.EqualFold(gender, "male") && pref == "boys":
		return 1.0, "Boys-only accommodation"
	case strings.EqualFold(gender, "female") && pref == "girls":
		return 1.0, "Girls-only accommodation"
	}
	return 0, ""
}

// UniversityScore scores university proximity. Only evaluated when the
// requester named a university: an exact nearest-university match is perfect,
// otherwise the score steps down with recorded distance. With no university
// preference the neutral no-preference score applies.
func UniversityScore(university, listingUniversity string, distanceKm float64, tuning Tuning) (float64, string) {
	if university == "" {
		return tuning.UniversityNoPreference, ""
	}
	if listingUniversity != "" && listingUniversity == university {
		return 1.0, fmt.Sprintf("Near your university: %skm", fmtAmount(distanceKm))
	}
	switch {
	case distanceKm < 3:
		return 0.9, fmt.Sprintf("Close to university: %skm", fmtAmount(distanceKm))
	case distanceKm < 5:
		return 0.8, fmt.Sprintf("Near university: %skm", fmtAmount(distanceKm))
	case distanceKm < 10:
		return 0.6, ""
	}
	return tuning.UniversityFar, ""
}

// FeaturesScore scores bedroom and bathroom counts against the requester's
// stated minimums.
func FeaturesScore(bedrooms, bathrooms, minBeds, minBaths int) (float64, string) {
	switch {
	case bedrooms >= minBeds && bathrooms >= minBaths:
		return 1.0, fmt.Sprintf("%d bedrooms, %d bathrooms", bedrooms, bathrooms)
	case bedrooms >= minBeds:
		return 0.7, fmt.Sprintf("%d bedrooms", bedrooms)
	case bathrooms >= minBaths:
		return 0.5, fmt.Sprintf("%d bathrooms", bathrooms)
	}
	return 0.3, ""
}

// PopularityScore normalizes the listing's eloRating into [0, 1] against the
// saturation ceiling. Scores above 0.8 earn a reason.
func PopularityScore(elo, ceiling float64) (float64, string) {
	if ceiling <= 0 {
		return 0, ""
	}
	score := elo / ceiling
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	if score > 0.8 {
		return score, "Highly rated by other students"
	}
	return score, ""
}
