// Package challenge tracks a ten-route challenge and its running score.
package challenge

import (
	"fmt"

	"github.com/etops-strategy/engine/internal/scoring"
	"github.com/etops-strategy/engine/pkg/core"
)

// RouteCount is the fixed length of a challenge.
const RouteCount = 10

// State is the lifecycle stage of a challenge.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "not_started"
	}
}

// Generator produces the route descriptors of a new challenge.
type Generator interface {
	Generate(difficulty core.Difficulty, n int) ([]core.RouteDescriptor, error)
}

// Aggregator is the challenge state machine. It is owned by a single
// interaction loop and is not safe for concurrent use.
type Aggregator struct {
	gen        Generator
	state      State
	difficulty core.Difficulty
	routes     []core.RouteDescriptor
	index      int
	total      int
}

// NewAggregator returns a challenge in the NotStarted state.
func NewAggregator(gen Generator) *Aggregator {
	return &Aggregator{gen: gen}
}

// Start generates a fresh set of routes and discards any prior progress.
// On generation failure the previous state is kept.
func (a *Aggregator) Start(difficulty core.Difficulty) error {
	if _, err := core.ParseDifficulty(string(difficulty)); err != nil {
		return err
	}
	if a.gen == nil {
		return core.NewInvalidInput("generator", "no route generator configured")
	}
	routes, err := a.gen.Generate(difficulty, RouteCount)
	if err != nil {
		return fmt.Errorf("failed to generate challenge routes: %w", err)
	}
	if len(routes) != RouteCount {
		return fmt.Errorf("generator returned %d routes, want %d", len(routes), RouteCount)
	}

	a.routes = make([]core.RouteDescriptor, RouteCount)
	for i, r := range routes {
		r.Number = i + 1
		r.Completed = false
		r.Score = 0
		a.routes[i] = r
	}
	a.difficulty = difficulty
	a.index = 0
	a.total = 0
	a.state = StateInProgress
	return nil
}

// CompleteCurrent records score for the current route and advances.
func (a *Aggregator) CompleteCurrent(score int) error {
	if a.state != StateInProgress {
		return core.NewInvalidInput("challenge state", "cannot complete a route while %s", a.state)
	}
	if score < 0 || score > scoring.MaxChallengeTotal {
		return core.NewInvalidInput("score", "must be within 0..%d, got %d", scoring.MaxChallengeTotal, score)
	}

	a.routes[a.index].Completed = true
	a.routes[a.index].Score = score
	a.total += score
	a.index++
	if a.index == RouteCount {
		a.state = StateCompleted
	}
	return nil
}

// Current returns the route being played, if any.
func (a *Aggregator) Current() (core.RouteDescriptor, bool) {
	if a.state != StateInProgress {
		return core.RouteDescriptor{}, false
	}
	return a.routes[a.index], true
}

// Routes returns a copy of every route descriptor of the challenge.
func (a *Aggregator) Routes() []core.RouteDescriptor {
	out := make([]core.RouteDescriptor, len(a.routes))
	copy(out, a.routes)
	return out
}

// State returns the lifecycle stage.
func (a *Aggregator) State() State { return a.state }

// Index returns the zero-based position of the current route.
func (a *Aggregator) Index() int { return a.index }

// Total returns the running sum of completed scores.
func (a *Aggregator) Total() int { return a.total }

// Difficulty returns the difficulty the challenge was started with.
func (a *Aggregator) Difficulty() core.Difficulty { return a.difficulty }

// Average returns the mean score per route once the challenge is completed.
func (a *Aggregator) Average() (float64, bool) {
	if a.state != StateCompleted {
		return 0, false
	}
	return float64(a.total) / RouteCount, true
}
