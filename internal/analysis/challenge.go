package analysis

import (
	"context"

	"github.com/etops-strategy/engine/internal/challenge"
	"github.com/etops-strategy/engine/pkg/core"
)

// ChallengeRound flies the current challenge route with model and completes
// it with the challenge total. Booked passengers above the aircraft capacity
// are left behind, so the route stays flyable with any aircraft.
func (a *Analyzer) ChallengeRound(ctx context.Context, agg *challenge.Aggregator, model string) (Report, error) {
	desc, ok := agg.Current()
	if !ok {
		return Report{}, core.NewInvalidInput("challenge", "no route in progress (state %s)", agg.State())
	}
	aircraft, from, to, err := a.Resolve(model, desc.Departure, desc.Arrival)
	if err != nil {
		return Report{}, err
	}

	passengers := min(desc.Passengers, aircraft.Capacity)
	rep, err := a.Evaluate(ctx, aircraft, core.Route{Departure: from, Arrival: to, Passengers: passengers})
	if err != nil {
		return Report{}, err
	}
	if err := agg.CompleteCurrent(rep.Detailed.ChallengeTotal); err != nil {
		return Report{}, err
	}

	a.logger.DebugContext(ctx, "Challenge route completed",
		"route", desc.Number,
		"score", rep.Detailed.ChallengeTotal,
		"running_total", agg.Total(),
	)
	return rep, nil
}
