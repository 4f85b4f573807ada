package analysis

import "github.com/etops-strategy/engine/internal/environment"

// Recommendation is a machine-readable improvement hint. Wording is left to
// the presentation layer.
type Recommendation string

const (
	RecommendLowUtilization Recommendation = "low_utilization"
	RecommendHighCO2        Recommendation = "high_co2_per_passenger"
	RecommendETOPSNotMet    Recommendation = "etops_not_met"
	RecommendLowSDGScore    Recommendation = "low_sdg_score"
)

const (
	utilizationHintThreshold = 0.7
	co2HintThresholdKg       = 150.0
	sdgHintThreshold         = 6.0
)

// Recommendations lists the hints for a route in a fixed order. An empty
// result means nothing to improve.
func Recommendations(m RouteFacts) []Recommendation {
	out := []Recommendation{}
	if m.Utilization < utilizationHintThreshold {
		out = append(out, RecommendLowUtilization)
	}
	if m.CO2PerPassengerKg > co2HintThresholdKg {
		out = append(out, RecommendHighCO2)
	}
	if !m.ETOPSCompliant {
		out = append(out, RecommendETOPSNotMet)
	}
	if m.TotalSDGScore < sdgHintThreshold {
		out = append(out, RecommendLowSDGScore)
	}
	return out
}

// RouteFacts is the subset of an analysis the hints depend on.
type RouteFacts struct {
	Utilization       float64
	CO2PerPassengerKg float64
	ETOPSCompliant    bool
	TotalSDGScore     float64
}

func factsOf(compliant bool, impact environment.Impact) RouteFacts {
	return RouteFacts{
		Utilization:       impact.CapacityUtilization,
		CO2PerPassengerKg: impact.CO2PerPassengerKg,
		ETOPSCompliant:    compliant,
		TotalSDGScore:     impact.TotalSDGScore,
	}
}
