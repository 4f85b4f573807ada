// Package environment derives fuel, CO2 and seat utilization figures for a flight.
package environment

import (
	"math"

	"github.com/etops-strategy/engine/pkg/core"
)

// CarCO2KgPerPassengerKm is the per-passenger car emission used for comparisons.
const CarCO2KgPerPassengerKm = 0.12

// FuelBurn returns the liters burned over distanceKm.
func FuelBurn(distanceKm, fuelLPerKm float64) float64 {
	return distanceKm * fuelLPerKm
}

// CO2Emitted returns the kilograms of CO2 emitted over distanceKm.
func CO2Emitted(distanceKm, co2KgPerKm float64) float64 {
	return distanceKm * co2KgPerKm
}

// CO2PerPassenger splits the flight total across passengers.
// A non-positive passenger count returns the total unchanged.
func CO2PerPassenger(totalCO2Kg float64, passengers int) float64 {
	if passengers > 0 {
		return totalCO2Kg / float64(passengers)
	}
	return totalCO2Kg
}

// CapacityUtilization returns booked passengers over seats as a ratio in [0,1].
func CapacityUtilization(passengers, capacity int) (float64, error) {
	if capacity <= 0 {
		return 0, core.NewInvalidInput("capacity", "must be positive, got %d", capacity)
	}
	if passengers <= 0 || passengers > capacity {
		return 0, core.NewInvalidInput("passengers", "must be within 1..%d, got %d", capacity, passengers)
	}
	return float64(passengers) / float64(capacity), nil
}

// Impact summarizes the sustainability of one flight on a 0-10 scale.
type Impact struct {
	TotalFuelL          float64
	TotalCO2Kg          float64
	CO2PerPassengerKg   float64
	CapacityUtilization float64
	EfficiencyScore     float64 // 10 minus one point per 100 kg CO2 per passenger, floored at 0
	UtilizationScore    float64 // utilization ratio times 10
	TotalSDGScore       float64 // mean of efficiency, utilization and aircraft SDG score
}

// ComputeImpact derives the sustainability figures of flying aircraft over distanceKm.
func ComputeImpact(aircraft core.Aircraft, distanceKm float64, passengers int) (Impact, error) {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		return Impact{}, core.NewInvalidInput("distance", "must be non-negative, got %v", distanceKm)
	}
	utilization, err := CapacityUtilization(passengers, aircraft.Capacity)
	if err != nil {
		return Impact{}, err
	}

	fuel := FuelBurn(distanceKm, aircraft.FuelLPerKm)
	co2 := CO2Emitted(distanceKm, aircraft.CO2KgPerKm)
	perPax := CO2PerPassenger(co2, passengers)

	efficiency := math.Max(0, 10-perPax/100)
	utilizationScore := utilization * 10

	return Impact{
		TotalFuelL:          fuel,
		TotalCO2Kg:          co2,
		CO2PerPassengerKg:   perPax,
		CapacityUtilization: utilization,
		EfficiencyScore:     efficiency,
		UtilizationScore:    utilizationScore,
		TotalSDGScore:       (efficiency + utilizationScore + aircraft.SDGScore) / 3,
	}, nil
}

// CarComparison contrasts the flight with carrying the same passengers by car.
type CarComparison struct {
	CarCO2Kg float64
	// ReductionPct is positive when the flight emits less than the cars would.
	ReductionPct float64
}

// CompareWithCar compares flightCO2Kg with the car emission for the same trip.
// A zero distance trip (co-located airports) compares as zero for both.
func CompareWithCar(distanceKm float64, passengers int, flightCO2Kg float64) (CarComparison, error) {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		return CarComparison{}, core.NewInvalidInput("distance", "must be non-negative, got %v", distanceKm)
	}
	if passengers <= 0 {
		return CarComparison{}, core.NewInvalidInput("passengers", "must be positive, got %d", passengers)
	}
	if distanceKm == 0 {
		return CarComparison{}, nil
	}
	car := distanceKm * CarCO2KgPerPassengerKm * float64(passengers)
	return CarComparison{
		CarCO2Kg:     car,
		ReductionPct: (car - flightCO2Kg) / car * 100,
	}, nil
}
