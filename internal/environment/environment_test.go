package environment

import (
	"errors"
	"testing"

	"github.com/etops-strategy/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleAircraft() core.Aircraft {
	return core.Aircraft{
		Model:        "Example 787",
		Capacity:     300,
		SpeedKmh:     900,
		ETOPSMinutes: 180,
		FuelLPerKm:   3.0,
		CO2KgPerKm:   8.0,
		SDGScore:     8,
	}
}

func TestFuelAndCO2(t *testing.T) {
	assert.Equal(t, 15000.0, FuelBurn(5000, 3.0))
	assert.Equal(t, 40000.0, CO2Emitted(5000, 8.0))
	assert.Equal(t, 0.0, FuelBurn(0, 3.0))
}

func TestCO2PerPassenger(t *testing.T) {
	assert.InDelta(t, 148.148, CO2PerPassenger(40000, 270), 0.001)
	assert.Equal(t, 40000.0, CO2PerPassenger(40000, 0))
	assert.Equal(t, 40000.0, CO2PerPassenger(40000, -3))
}

func TestCapacityUtilization(t *testing.T) {
	u, err := CapacityUtilization(270, 300)
	require.NoError(t, err)
	assert.Equal(t, 0.9, u)

	u, err = CapacityUtilization(300, 300)
	require.NoError(t, err)
	assert.Equal(t, 1.0, u)
}

func TestCapacityUtilization_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		passengers int
		capacity   int
	}{
		{"zero capacity", 10, 0},
		{"zero passengers", 0, 300},
		{"negative passengers", -1, 300},
		{"overbooked", 301, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CapacityUtilization(tt.passengers, tt.capacity)
			assert.True(t, errors.Is(err, core.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestComputeImpact(t *testing.T) {
	impact, err := ComputeImpact(exampleAircraft(), 5000, 270)
	require.NoError(t, err)

	assert.Equal(t, 15000.0, impact.TotalFuelL)
	assert.Equal(t, 40000.0, impact.TotalCO2Kg)
	assert.InDelta(t, 148.148, impact.CO2PerPassengerKg, 0.001)
	assert.Equal(t, 0.9, impact.CapacityUtilization)
	assert.InDelta(t, 8.5185, impact.EfficiencyScore, 0.001)
	assert.InDelta(t, 9.0, impact.UtilizationScore, 1e-9)
	assert.InDelta(t, (8.5185+9.0+8.0)/3, impact.TotalSDGScore, 0.001)
}

func TestComputeImpact_EfficiencyFloorsAtZero(t *testing.T) {
	ac := exampleAircraft()
	ac.CO2KgPerKm = 40
	impact, err := ComputeImpact(ac, 10000, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, impact.EfficiencyScore)
}

func TestComputeImpact_Invalid(t *testing.T) {
	_, err := ComputeImpact(exampleAircraft(), -1, 100)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	_, err = ComputeImpact(exampleAircraft(), 1000, 0)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestCompareWithCar(t *testing.T) {
	cmp, err := CompareWithCar(5000, 270, 40000)
	require.NoError(t, err)
	assert.InDelta(t, 162000.0, cmp.CarCO2Kg, 1e-6)
	assert.InDelta(t, 75.3086, cmp.ReductionPct, 0.001)

	cmp, err = CompareWithCar(1000, 1, 8000)
	require.NoError(t, err)
	assert.Less(t, cmp.ReductionPct, 0.0)

	_, err = CompareWithCar(-1, 10, 100)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	_, err = CompareWithCar(1000, 0, 100)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestCompareWithCar_ZeroDistance(t *testing.T) {
	cmp, err := CompareWithCar(0, 200, 0)
	require.NoError(t, err)
	assert.Equal(t, CarComparison{}, cmp)
}
