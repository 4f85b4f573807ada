package geo

import (
	"math"

	"github.com/etops-strategy/engine/pkg/core"
)

// SampleCount is the number of points checked along a route, endpoints included.
const SampleCount = 21

// SamplePoints returns SampleCount points at ratio i/(SampleCount-1) along the
// linear interpolation of latitude and longitude between dep and arr.
// This is not a geodesic path; long and polar routes deviate from the great circle.
func SamplePoints(dep, arr core.LatLon) []core.LatLon {
	points := make([]core.LatLon, SampleCount)
	for i := range points {
		ratio := float64(i) / float64(SampleCount-1)
		points[i] = core.LatLon{
			Lat: dep.Lat + ratio*(arr.Lat-dep.Lat),
			Lon: dep.Lon + ratio*(arr.Lon-dep.Lon),
		}
	}
	return points
}

// NearestAlternate returns the alternate closest to p and its distance in km.
// The alternate set must not be empty.
func NearestAlternate(p core.LatLon, alternates []core.Airport) (core.Airport, float64, error) {
	if len(alternates) == 0 {
		return core.Airport{}, 0, core.NewInvalidInput("alternates", "at least one alternate airport is required")
	}
	best := math.Inf(1)
	var nearest core.Airport
	for _, ap := range alternates {
		if d := Distance(p, ap.Position()); d < best {
			best = d
			nearest = ap
		}
	}
	return nearest, best, nil
}

// RequiredDiversion returns the worst-case distance in km from any sampled
// point along the route to its nearest alternate airport.
func RequiredDiversion(dep, arr core.LatLon, alternates []core.Airport) (float64, error) {
	if len(alternates) == 0 {
		return 0, core.NewInvalidInput("alternates", "at least one alternate airport is required")
	}
	worst := 0.0
	for _, p := range SamplePoints(dep, arr) {
		_, d, err := NearestAlternate(p, alternates)
		if err != nil {
			return 0, err
		}
		worst = math.Max(worst, d)
	}
	return worst, nil
}

// RequiredETOPSMinutes converts a diversion distance into flying minutes at cruise speed.
func RequiredETOPSMinutes(diversionKm, cruiseSpeedKmh float64) (float64, error) {
	if !(cruiseSpeedKmh > 0) {
		return 0, core.NewInvalidInput("cruise speed", "must be positive, got %v", cruiseSpeedKmh)
	}
	if diversionKm < 0 || math.IsNaN(diversionKm) {
		return 0, core.NewInvalidInput("diversion distance", "must be non-negative, got %v", diversionKm)
	}
	return diversionKm / cruiseSpeedKmh * 60, nil
}
