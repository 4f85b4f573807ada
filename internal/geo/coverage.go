package geo

import (
	"fmt"

	"github.com/etops-strategy/engine/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// CoverageAverageSpeedKmh is the fixed speed used to turn an ETOPS rating
// into a coverage radius around each alternate.
const CoverageAverageSpeedKmh = 850.0

// Projection selects the coordinate system of exported geometries.
type Projection string

const (
	ProjectionWGS84       Projection = "4326"
	ProjectionWebMercator Projection = "3857"
)

// ParseProjection validates a projection name.
func ParseProjection(s string) (Projection, error) {
	switch p := Projection(s); p {
	case ProjectionWGS84, ProjectionWebMercator:
		return p, nil
	default:
		return "", core.NewInvalidInput("projection", "unsupported EPSG code %q", s)
	}
}

// CoverageRadiusKm is the radius an aircraft can reach from an alternate within its ETOPS rating.
func CoverageRadiusKm(etopsMinutes float64) float64 {
	return etopsMinutes / 60 * CoverageAverageSpeedKmh
}

// Coverage builds a GeoJSON feature collection for the route, its sampled
// check points and the coverage circle centres of every alternate.
func Coverage(
	dep, arr core.Airport,
	alternates []core.Airport,
	etopsMinutes float64,
	proj Projection,
) (geom.GeoJSONFeatureCollection, error) {
	if len(alternates) == 0 {
		return nil, core.NewInvalidInput("alternates", "at least one alternate airport is required")
	}
	if etopsMinutes < 0 {
		return nil, core.NewInvalidInput("etops", "must be non-negative, got %v", etopsMinutes)
	}
	project := func(p core.LatLon) geom.XY {
		if proj == ProjectionWebMercator {
			return Project3857(p)
		}
		return geom.XY{X: p.Lon, Y: p.Lat}
	}
	radius := CoverageRadiusKm(etopsMinutes)

	samples := SamplePoints(dep.Position(), arr.Position())
	fc := make(geom.GeoJSONFeatureCollection, 0, 1+len(samples)+len(alternates))

	flat := make([]float64, 0, 2*len(samples))
	for _, p := range samples {
		xy := project(p)
		flat = append(flat, xy.X, xy.Y)
	}
	line, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return nil, fmt.Errorf("failed to build route line: %w", err)
	}
	fc = append(fc, geom.GeoJSONFeature{
		Geometry: line.AsGeometry(),
		ID:       fmt.Sprintf("route:%s-%s", dep.IATA, arr.IATA),
		Properties: map[string]interface{}{
			"kind":        "route",
			"from":        dep.IATA,
			"to":          arr.IATA,
			"distance_km": Distance(dep.Position(), arr.Position()),
		},
	})

	for i, p := range samples {
		nearest, d, err := NearestAlternate(p, alternates)
		if err != nil {
			return nil, err
		}
		pt, err := point(project(p))
		if err != nil {
			return nil, fmt.Errorf("failed to build sample %d: %w", i, err)
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: pt.AsGeometry(),
			ID:       fmt.Sprintf("sample:%d", i),
			Properties: map[string]interface{}{
				"kind":         "sample",
				"index":        i,
				"nearest":      nearest.IATA,
				"nearest_km":   d,
				"within_etops": d <= radius,
			},
		})
	}

	for _, ap := range alternates {
		pt, err := point(project(ap.Position()))
		if err != nil {
			return nil, fmt.Errorf("failed to build alternate %s: %w", ap.IATA, err)
		}
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: pt.AsGeometry(),
			ID:       "alternate:" + ap.IATA,
			Properties: map[string]interface{}{
				"kind":      "alternate",
				"iata":      ap.IATA,
				"name":      ap.Name,
				"radius_km": radius,
			},
		})
	}
	return fc, nil
}

func point(xy geom.XY) (geom.Point, error) {
	return geom.NewPoint(geom.Coordinates{XY: xy, Type: geom.DimXY})
}
