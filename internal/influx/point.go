package influx

import (
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

// AnalysisSample is the flattened outcome of one route analysis.
type AnalysisSample struct {
	Aircraft    string
	Departure   string
	Arrival     string
	Tier        string
	Compliant   bool
	Passengers  int
	DistanceKm  float64
	DiversionKm float64
	ETOPSNeeded float64
	CO2PerPax   float64
	Utilization float64
	Total       int
	Time        time.Time
}

// NewAnalysisPoint converts a sample into a route_analysis point. Route
// identity goes into tags, measured values into fields.
func NewAnalysisPoint(s AnalysisSample) *influxdb2_write.Point {
	ts := s.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return influxdb2_write.NewPoint(
		Measurement,
		map[string]string{
			"aircraft":  s.Aircraft,
			"departure": s.Departure,
			"arrival":   s.Arrival,
			"tier":      s.Tier,
		},
		map[string]interface{}{
			"etops_compliant":   s.Compliant,
			"passengers":        s.Passengers,
			"distance_km":       s.DistanceKm,
			"diversion_km":      s.DiversionKm,
			"etops_minutes":     s.ETOPSNeeded,
			"co2_per_passenger": s.CO2PerPax,
			"utilization":       s.Utilization,
			"total_score":       s.Total,
		},
		ts,
	)
}
