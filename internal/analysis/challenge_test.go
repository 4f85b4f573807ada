package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etops-strategy/engine/internal/challenge"
	"github.com/etops-strategy/engine/pkg/core"
)

type transatlantic struct {
	passengers int
}

func (g transatlantic) Generate(_ core.Difficulty, n int) ([]core.RouteDescriptor, error) {
	out := make([]core.RouteDescriptor, n)
	for i := range out {
		out[i] = core.RouteDescriptor{Departure: "LHR", Arrival: "JFK", DistanceKm: 5555, Passengers: g.passengers}
		if i%2 == 1 {
			out[i].Departure, out[i].Arrival = "JFK", "LHR"
		}
	}
	return out, nil
}

func TestChallengeRound_PlaysAllRoutes(t *testing.T) {
	a := New(newCatalog(t, lhr, jfk, kef), nil)
	agg := challenge.NewAggregator(transatlantic{passengers: 420})
	require.NoError(t, agg.Start(core.DifficultyMedium))

	for i := 0; i < challenge.RouteCount; i++ {
		rep, err := a.ChallengeRound(context.Background(), agg, "Twin-180")
		require.NoError(t, err, "route %d", i+1)
		assert.Equal(t, 300, rep.Route.Passengers, "booking is capped at capacity")
		// full cabin: 15 + 25 + 25 + 20 base, plus the 4000 km bonus
		assert.Equal(t, 88, rep.Detailed.ChallengeTotal)
	}

	assert.Equal(t, challenge.StateCompleted, agg.State())
	assert.Equal(t, 880, agg.Total())
	avg, ok := agg.Average()
	require.True(t, ok)
	assert.InDelta(t, 88, avg, 1e-9)

	_, err := a.ChallengeRound(context.Background(), agg, "Twin-180")
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestChallengeRound_UnknownAircraftKeepsState(t *testing.T) {
	a := New(newCatalog(t, lhr, jfk, kef), nil)
	agg := challenge.NewAggregator(transatlantic{passengers: 200})
	require.NoError(t, agg.Start(core.DifficultyEasy))

	_, err := a.ChallengeRound(context.Background(), agg, "Concorde")
	require.Error(t, err)
	assert.Equal(t, 0, agg.Index())
	assert.Equal(t, challenge.StateInProgress, agg.State())
}
