package matching

import (
	"math"
	"strings"

	"github.com/kindph/matching/internal/domain/geo"
	"github.com/kindph/matching/internal/domain/job"
	"github.com/kindph/matching/internal/domain/seeker"
)

// scoreLocation walks the location cascade; the first rule that applies wins:
// exact desired location, distance within the work radius, region lookup,
// fuzzy text overlap, neutral fallback.
func scoreLocation(prefs *seeker.Preferences, profile *seeker.Profile, p *job.Posting) int {
	if containsFold(prefs.DesiredLocations, p.Location) {
		return locationExact
	}

	if profile.Coordinates != nil && p.Coordinates != nil && prefs.PreferredRadiusKm > 0 {
		d := geo.HaversineKm(*profile.Coordinates, *p.Coordinates)
		return distanceScore(d, prefs.PreferredRadiusKm)
	}

	if p.Province != "" && p.Region != "" {
		if s, ok := regionScore(prefs.DesiredLocations, p.Province, p.Region); ok {
			return s
		}
	}

	if fuzzyLocationMatch(prefs.DesiredLocations, p.Location) {
		return locationFuzzy
	}

	return locationNeutral
}

// distanceScore: inside the radius the score falls linearly from 100 to 60;
// outside it is a flat 30.
func distanceScore(distanceKm, radiusKm float64) int {
	if distanceKm > radiusKm {
		return locationOutsideRadius
	}
	s := scoreFull - (distanceKm/radiusKm)*locationRadiusSpan
	return int(math.Max(locationRadiusFloor, math.Round(s)))
}

// regionScore matches desired locations against the posting's region (85), then
// against the region its province belongs to (80). ok is false when neither hits,
// so the cascade continues.
func regionScore(desired []string, province, region string) (int, bool) {
	var desiredRegions []string
	for _, loc := range desired {
		if r, ok := geo.RegionOf(loc); ok {
			desiredRegions = append(desiredRegions, r)
		}
	}
	if len(desiredRegions) == 0 {
		return 0, false
	}

	for _, r := range desiredRegions {
		if geo.SameRegion(r, region) {
			return locationRegion, true
		}
	}

	if provRegion, ok := geo.RegionOf(province); ok {
		for _, r := range desiredRegions {
			if r == provRegion {
				return locationProvince, true
			}
		}
	}
	return 0, false
}

func fuzzyLocationMatch(desired []string, location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return false
	}
	for _, d := range lowerAll(desired) {
		if strings.Contains(loc, d) || strings.Contains(d, loc) {
			return true
		}
	}
	return false
}
