package challenge

import (
	"math"
	"math/rand"

	"github.com/etops-strategy/engine/internal/geo"
	"github.com/etops-strategy/engine/pkg/core"
)

// band bounds the route distance and passenger load of a difficulty.
type band struct {
	minKm, maxKm   float64
	minPax, maxPax int
}

var difficultyBands = map[core.Difficulty]band{
	core.DifficultyEasy:   {minKm: 0, maxKm: 4000, minPax: 80, maxPax: 180},
	core.DifficultyMedium: {minKm: 4000, maxKm: 8000, minPax: 150, maxPax: 280},
	core.DifficultyHard:   {minKm: 8000, maxKm: math.Inf(1), minPax: 220, maxPax: 400},
}

type pair struct {
	dep, arr core.Airport
	km       float64
}

// RandomGenerator draws distinct airport pairs whose distance falls into
// the difficulty band. When no pair fits the band every pair is eligible.
type RandomGenerator struct {
	airports []core.Airport
	rng      *rand.Rand
}

// NewRandomGenerator builds a generator over airports seeded with seed.
func NewRandomGenerator(airports []core.Airport, seed int64) *RandomGenerator {
	return &RandomGenerator{
		airports: airports,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Generate returns n route descriptors for difficulty.
func (g *RandomGenerator) Generate(difficulty core.Difficulty, n int) ([]core.RouteDescriptor, error) {
	b, ok := difficultyBands[difficulty]
	if !ok {
		return nil, core.NewInvalidInput("difficulty", "unknown difficulty %q", difficulty)
	}
	if len(g.airports) < 2 {
		return nil, core.NewInvalidInput("airports", "need at least 2 airports, got %d", len(g.airports))
	}
	if n <= 0 {
		return nil, core.NewInvalidInput("route count", "must be positive, got %d", n)
	}

	var all, inBand []pair
	for i := 0; i < len(g.airports); i++ {
		for j := i + 1; j < len(g.airports); j++ {
			p := pair{dep: g.airports[i], arr: g.airports[j]}
			p.km = geo.Distance(p.dep.Position(), p.arr.Position())
			all = append(all, p)
			if p.km >= b.minKm && p.km < b.maxKm {
				inBand = append(inBand, p)
			}
		}
	}
	pool := inBand
	if len(pool) == 0 {
		pool = all
	}

	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	routes := make([]core.RouteDescriptor, n)
	for i := range routes {
		p := pool[i%len(pool)]
		if g.rng.Intn(2) == 1 {
			p.dep, p.arr = p.arr, p.dep
		}
		routes[i] = core.RouteDescriptor{
			Number:     i + 1,
			Departure:  p.dep.IATA,
			Arrival:    p.arr.IATA,
			DistanceKm: p.km,
			Passengers: b.minPax + g.rng.Intn(b.maxPax-b.minPax+1),
		}
	}
	return routes, nil
}
