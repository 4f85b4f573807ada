// pkg/core/route.go
package core

// Route is a transient departure/arrival pairing with a booked passenger count.
type Route struct {
	Departure  Airport
	Arrival    Airport
	Passengers int
}

// Validate checks the route against the aircraft that will fly it.
func (r Route) Validate(aircraft Aircraft) error {
	if NormalizeIATA(r.Departure.IATA) == NormalizeIATA(r.Arrival.IATA) {
		return NewInvalidInput("route", "departure and arrival are both %s", r.Departure.IATA)
	}
	if aircraft.Capacity <= 0 {
		return NewInvalidInput("capacity", "must be positive, got %d", aircraft.Capacity)
	}
	if r.Passengers < 1 || r.Passengers > aircraft.Capacity {
		return NewInvalidInput("passengers", "must be within 1..%d, got %d", aircraft.Capacity, r.Passengers)
	}
	return nil
}

// RouteMetrics is derived from an aircraft, a route and the alternate airport set.
type RouteMetrics struct {
	DistanceKm           float64
	RequiredDiversionKm  float64
	RequiredETOPSMinutes float64
	ETOPSCompliant       bool
	TotalFuelL           float64
	TotalCO2Kg           float64
	CO2PerPassengerKg    float64
	CapacityUtilization  float64 // ratio in [0,1]
}
