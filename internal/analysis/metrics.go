// Package analysis ties the geometric, environmental and scoring models
// together into one route analysis.
package analysis

import (
	"github.com/etops-strategy/engine/internal/environment"
	"github.com/etops-strategy/engine/internal/geo"
	"github.com/etops-strategy/engine/pkg/core"
)

// ComputeMetrics derives the route metrics of flying aircraft on route, with
// alternates as the diversion airport pool.
func ComputeMetrics(aircraft core.Aircraft, route core.Route, alternates []core.Airport) (core.RouteMetrics, error) {
	if err := route.Validate(aircraft); err != nil {
		return core.RouteMetrics{}, err
	}

	dep, arr := route.Departure.Position(), route.Arrival.Position()
	distance := geo.Distance(dep, arr)

	diversion, err := geo.RequiredDiversion(dep, arr, alternates)
	if err != nil {
		return core.RouteMetrics{}, err
	}
	minutes, err := geo.RequiredETOPSMinutes(diversion, aircraft.SpeedKmh)
	if err != nil {
		return core.RouteMetrics{}, err
	}
	utilization, err := environment.CapacityUtilization(route.Passengers, aircraft.Capacity)
	if err != nil {
		return core.RouteMetrics{}, err
	}

	co2 := environment.CO2Emitted(distance, aircraft.CO2KgPerKm)
	return core.RouteMetrics{
		DistanceKm:           distance,
		RequiredDiversionKm:  diversion,
		RequiredETOPSMinutes: minutes,
		ETOPSCompliant:       minutes <= aircraft.ETOPSMinutes,
		TotalFuelL:           environment.FuelBurn(distance, aircraft.FuelLPerKm),
		TotalCO2Kg:           co2,
		CO2PerPassengerKg:    environment.CO2PerPassenger(co2, route.Passengers),
		CapacityUtilization:  utilization,
	}, nil
}
