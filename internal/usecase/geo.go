package usecase

import (
	"math"
	"sort"

	"roomfoodfinder/internal/domain/entity"
)

const earthRadiusKm = 6371.0

// DefaultRadiusKm is applied when a proximity query omits the radius.
const DefaultRadiusKm = 20.0

// haversineKm returns the great-circle distance in kilometres between two
// points given in degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// ListingResult is a listing optionally annotated with its distance from a
// proximity query point. Distance is absent for plain (non-geo) queries.
type ListingResult struct {
	*entity.Listing
	Distance *float64 `json:"distance,omitempty"`
}

// filterByProximity annotates each candidate with its Haversine distance to
// (lat, lng), drops everything outside radiusKm and sorts nearest first.
// Listings without coordinates get an infinite distance, so the radius filter
// excludes them without erroring. The sort is stable: ties keep the candidates'
// original relative order.
func filterByProximity(candidates []*entity.Listing, lat, lng, radiusKm float64) []*ListingResult {
	results := make([]*ListingResult, 0, len(candidates))
	for _, l := range candidates {
		distance := math.Inf(1)
		if l.HasCoordinates() {
			distance = haversineKm(lat, lng, *l.Lat, *l.Lng)
		}
		if distance <= radiusKm {
			d := distance
			results = append(results, &ListingResult{Listing: l, Distance: &d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})
	return results
}
