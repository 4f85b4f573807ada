package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/etops-strategy/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_EndToEndExample(t *testing.T) {
	co2PerPax := 40000.0 / 270
	utilization := 270.0 / 300

	res, err := Score(true, co2PerPax, utilization, 8)
	require.NoError(t, err)
	assert.Equal(t, 25, res.ETOPS)
	assert.Equal(t, 15, res.Environmental)
	assert.Equal(t, 25, res.Efficiency)
	assert.InDelta(t, 20.0, res.Aircraft, 1e-9)
	assert.Equal(t, 20, res.AircraftDisplay)
	assert.Equal(t, 85, res.Total)

	res, err = Score(false, co2PerPax, utilization, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ETOPS)
	assert.Equal(t, 60, res.Total)
}

func TestScore_Maximum(t *testing.T) {
	res, err := Score(true, 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, MaxTotal, res.Total)
}

func TestScore_Minimum(t *testing.T) {
	res, err := Score(false, 1e6, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Total)
}

func TestScore_UnroundedAircraftFeedsTotal(t *testing.T) {
	res, err := Score(true, 300, 0.5, 7.3)
	require.NoError(t, err)
	assert.Equal(t, 18, res.AircraftDisplay)
	assert.InDelta(t, 18.25, res.Aircraft, 1e-9)
	assert.Equal(t, 53, res.Total)

	// 25 + 5 + 5 + 19.5
	res, err = Score(true, 300, 0.5, 7.8)
	require.NoError(t, err)
	assert.Equal(t, 55, res.Total)
}

func TestEnvironmentalScore_Boundaries(t *testing.T) {
	tests := []struct {
		co2  float64
		want int
	}{
		{0, 25},
		{50, 25},
		{50.01, 20},
		{100, 20},
		{150, 15},
		{150.5, 10},
		{200, 10},
		{200.01, 5},
		{5000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnvironmentalScore(tt.co2), "co2=%v", tt.co2)
	}
}

func TestEfficiencyScore_Boundaries(t *testing.T) {
	tests := []struct {
		passengers int
		capacity   int
		want       int
	}{
		{300, 300, 25},
		{270, 300, 25},
		{269, 300, 20},
		{240, 300, 20},
		{210, 300, 15},
		{180, 300, 10},
		{179, 300, 5},
		{1, 300, 5},
		{9, 10, 25},
		{7, 10, 15},
		{6, 10, 10},
	}
	for _, tt := range tests {
		u := float64(tt.passengers) / float64(tt.capacity)
		assert.Equal(t, tt.want, EfficiencyScore(u), "%d/%d", tt.passengers, tt.capacity)
	}
}

func TestScore_MonotonicInEachInput(t *testing.T) {
	// non-decreasing as co2 falls, utilization rises, sdg rises, compliance improves
	prev := -1
	for co2 := 400.0; co2 >= 0; co2 -= 10 {
		res, err := Score(true, co2, 0.75, 5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Total, prev)
		prev = res.Total
	}

	prev = -1
	for u := 0.0; u <= 1.0; u += 0.05 {
		res, err := Score(true, 120, math.Min(u, 1), 5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Total, prev)
		prev = res.Total
	}

	prev = -1
	for sdg := 0.0; sdg <= 10; sdg += 0.5 {
		res, err := Score(false, 120, 0.75, sdg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Total, prev)
		prev = res.Total
	}

	off, err := Score(false, 120, 0.75, 5)
	require.NoError(t, err)
	on, err := Score(true, 120, 0.75, 5)
	require.NoError(t, err)
	assert.Greater(t, on.Total, off.Total)
}

func TestScore_TotalWithinBounds(t *testing.T) {
	for _, compliant := range []bool{false, true} {
		for co2 := 0.0; co2 <= 300; co2 += 25 {
			for u := 0.0; u <= 1.0; u += 0.1 {
				for sdg := 0.0; sdg <= 10; sdg++ {
					res, err := Score(compliant, co2, math.Min(u, 1), sdg)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, res.Total, 0)
					assert.LessOrEqual(t, res.Total, MaxTotal)
				}
			}
		}
	}
}

func TestScore_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		co2         float64
		utilization float64
		sdg         float64
	}{
		{"negative co2", -1, 0.5, 5},
		{"nan co2", math.NaN(), 0.5, 5},
		{"negative utilization", 10, -0.1, 5},
		{"utilization above one", 10, 1.1, 5},
		{"negative sdg", 10, 0.5, -0.5},
		{"sdg above ten", 10, 0.5, 10.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(true, tt.co2, tt.utilization, tt.sdg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidInput))
			var inv *core.InvalidInputError
			assert.True(t, errors.As(err, &inv))
		})
	}
}

func TestDistanceBonus(t *testing.T) {
	assert.Equal(t, 0, DistanceBonus(true, 999))
	assert.Equal(t, 1, DistanceBonus(true, 1000))
	assert.Equal(t, 2, DistanceBonus(true, 3999))
	assert.Equal(t, 3, DistanceBonus(true, 4000))
	assert.Equal(t, 4, DistanceBonus(true, 7999))
	assert.Equal(t, 5, DistanceBonus(true, 15000))
	assert.Equal(t, 0, DistanceBonus(false, 15000))
}

func TestDetailed_KeepsBaseSeparate(t *testing.T) {
	base, err := Score(true, 0, 1, 10)
	require.NoError(t, err)

	d, err := Detailed(base, 9000)
	require.NoError(t, err)
	assert.Equal(t, MaxTotal, d.Base.Total)
	assert.Equal(t, MaxDistanceBonus, d.DistanceBonus)
	assert.Equal(t, MaxChallengeTotal, d.ChallengeTotal)

	_, err = Detailed(base, -5)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestDetailed_NoBonusWithoutETOPS(t *testing.T) {
	base, err := Score(false, 40, 1, 10)
	require.NoError(t, err)

	d, err := Detailed(base, 9000)
	require.NoError(t, err)
	assert.Equal(t, 0, d.DistanceBonus)
	assert.Equal(t, base.Total, d.ChallengeTotal)
}
