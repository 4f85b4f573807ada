package challenge

import (
	"errors"
	"testing"

	"github.com/etops-strategy/engine/internal/geo"
	"github.com/etops-strategy/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAirports = []core.Airport{
	{IATA: "LHR", Name: "London Heathrow", Latitude: 51.4700, Longitude: -0.4543},
	{IATA: "CDG", Name: "Paris Charles de Gaulle", Latitude: 49.0097, Longitude: 2.5479},
	{IATA: "JFK", Name: "New York JFK", Latitude: 40.6413, Longitude: -73.7781},
	{IATA: "KEF", Name: "Keflavik", Latitude: 63.9850, Longitude: -22.6056},
	{IATA: "NRT", Name: "Tokyo Narita", Latitude: 35.7720, Longitude: 140.3929},
	{IATA: "SYD", Name: "Sydney", Latitude: -33.9399, Longitude: 151.1753},
}

func TestRandomGenerator_RespectsBands(t *testing.T) {
	tests := []struct {
		difficulty core.Difficulty
		check      func(km float64) bool
	}{
		{core.DifficultyEasy, func(km float64) bool { return km < 4000 }},
		{core.DifficultyMedium, func(km float64) bool { return km >= 4000 && km < 8000 }},
		{core.DifficultyHard, func(km float64) bool { return km >= 8000 }},
	}
	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			g := NewRandomGenerator(testAirports, 42)
			routes, err := g.Generate(tt.difficulty, RouteCount)
			require.NoError(t, err)
			require.Len(t, routes, RouteCount)

			b := difficultyBands[tt.difficulty]
			for i, r := range routes {
				assert.Equal(t, i+1, r.Number)
				assert.NotEqual(t, r.Departure, r.Arrival)
				assert.True(t, tt.check(r.DistanceKm), "distance %f outside %s band", r.DistanceKm, tt.difficulty)
				assert.GreaterOrEqual(t, r.Passengers, b.minPax)
				assert.LessOrEqual(t, r.Passengers, b.maxPax)
				assert.False(t, r.Completed)
			}
		})
	}
}

func TestRandomGenerator_DistanceMatchesAirports(t *testing.T) {
	byCode := map[string]core.Airport{}
	for _, ap := range testAirports {
		byCode[ap.IATA] = ap
	}
	g := NewRandomGenerator(testAirports, 7)
	routes, err := g.Generate(core.DifficultyMedium, RouteCount)
	require.NoError(t, err)
	for _, r := range routes {
		want := geo.Distance(byCode[r.Departure].Position(), byCode[r.Arrival].Position())
		assert.Equal(t, want, r.DistanceKm)
	}
}

func TestRandomGenerator_Deterministic(t *testing.T) {
	a, err := NewRandomGenerator(testAirports, 99).Generate(core.DifficultyHard, RouteCount)
	require.NoError(t, err)
	b, err := NewRandomGenerator(testAirports, 99).Generate(core.DifficultyHard, RouteCount)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomGenerator_FallsBackWhenBandEmpty(t *testing.T) {
	europe := testAirports[:2]
	g := NewRandomGenerator(europe, 1)
	routes, err := g.Generate(core.DifficultyHard, RouteCount)
	require.NoError(t, err)
	require.Len(t, routes, RouteCount)
	for _, r := range routes {
		assert.Less(t, r.DistanceKm, 1000.0)
	}
}

func TestRandomGenerator_Invalid(t *testing.T) {
	_, err := NewRandomGenerator(testAirports[:1], 1).Generate(core.DifficultyEasy, RouteCount)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	_, err = NewRandomGenerator(testAirports, 1).Generate(core.Difficulty("nope"), RouteCount)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	_, err = NewRandomGenerator(testAirports, 1).Generate(core.DifficultyEasy, 0)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestAggregator_WithRandomGenerator(t *testing.T) {
	a := NewAggregator(NewRandomGenerator(testAirports, 3))
	require.NoError(t, a.Start(core.DifficultyEasy))
	for i := 0; i < RouteCount; i++ {
		require.NoError(t, a.CompleteCurrent(i*10))
	}
	avg, ok := a.Average()
	require.True(t, ok)
	assert.InDelta(t, 45.0, avg, 1e-9)
}
