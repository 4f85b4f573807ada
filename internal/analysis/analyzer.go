package analysis

import (
	"context"
	"log/slog"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/etops-strategy/engine/internal/environment"
	"github.com/etops-strategy/engine/internal/geo"
	"github.com/etops-strategy/engine/internal/scoring"
	"github.com/etops-strategy/engine/internal/title"
	"github.com/etops-strategy/engine/pkg/core"
)

// Catalog resolves reference data. *refdata.Catalog implements it.
type Catalog interface {
	AircraftByModel(model string) (core.Aircraft, bool)
	AirportByIATA(code string) (core.Airport, bool)
	Airports() []core.Airport
}

// Report is the full outcome of analyzing one aircraft on one route.
type Report struct {
	Aircraft         core.Aircraft             `json:"aircraft"`
	Route            core.Route                `json:"route"`
	Metrics          core.RouteMetrics         `json:"metrics"`
	Score            core.ScoreResult          `json:"score"`
	Detailed         core.DetailedScore        `json:"detailed"`
	Title            core.TitleResult          `json:"title"`
	Impact           environment.Impact        `json:"impact"`
	Car              environment.CarComparison `json:"carComparison"`
	Recommendations  []Recommendation          `json:"recommendations"`
	CoverageRadiusKm float64                   `json:"coverageRadiusKm"`
}

// Analyzer runs route analyses against a catalog.
type Analyzer struct {
	catalog   Catalog
	logger    *slog.Logger
	recorders []Recorder
}

// New creates an Analyzer. A nil logger falls back to slog.Default.
func New(catalog Catalog, logger *slog.Logger, recorders ...Recorder) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		catalog:   catalog,
		logger:    logger,
		recorders: recorders,
	}
}

// Resolve looks up the aircraft and both airports of a route.
func (a *Analyzer) Resolve(model, dep, arr string) (core.Aircraft, core.Airport, core.Airport, error) {
	aircraft, ok := a.catalog.AircraftByModel(model)
	if !ok {
		return core.Aircraft{}, core.Airport{}, core.Airport{}, core.NewInvalidInput("aircraft", "unknown model %q", model)
	}
	from, ok := a.catalog.AirportByIATA(dep)
	if !ok {
		return core.Aircraft{}, core.Airport{}, core.Airport{}, core.NewInvalidInput("departure", "unknown airport %q", dep)
	}
	to, ok := a.catalog.AirportByIATA(arr)
	if !ok {
		return core.Aircraft{}, core.Airport{}, core.Airport{}, core.NewInvalidInput("arrival", "unknown airport %q", arr)
	}
	return aircraft, from, to, nil
}

// Analyze resolves the route in the catalog and evaluates it.
func (a *Analyzer) Analyze(ctx context.Context, model, dep, arr string, passengers int) (Report, error) {
	aircraft, from, to, err := a.Resolve(model, dep, arr)
	if err != nil {
		return Report{}, err
	}
	return a.Evaluate(ctx, aircraft, core.Route{Departure: from, Arrival: to, Passengers: passengers})
}

// Evaluate scores aircraft on route using every catalog airport and both
// route endpoints as alternates, then hands the report to the recorders.
func (a *Analyzer) Evaluate(ctx context.Context, aircraft core.Aircraft, route core.Route) (Report, error) {
	metrics, err := ComputeMetrics(aircraft, route, withEndpoints(a.catalog.Airports(), route))
	if err != nil {
		a.logger.DebugContext(ctx, "Route rejected", "aircraft", aircraft.Model, "error", err)
		return Report{}, err
	}

	score, err := scoring.Score(metrics.ETOPSCompliant, metrics.CO2PerPassengerKg, metrics.CapacityUtilization, aircraft.SDGScore)
	if err != nil {
		return Report{}, err
	}
	detailed, err := scoring.Detailed(score, metrics.DistanceKm)
	if err != nil {
		return Report{}, err
	}
	rank, err := title.Classify(score.Total)
	if err != nil {
		return Report{}, err
	}
	impact, err := environment.ComputeImpact(aircraft, metrics.DistanceKm, route.Passengers)
	if err != nil {
		return Report{}, err
	}
	car, err := environment.CompareWithCar(metrics.DistanceKm, route.Passengers, metrics.TotalCO2Kg)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Aircraft:         aircraft,
		Route:            route,
		Metrics:          metrics,
		Score:            score,
		Detailed:         detailed,
		Title:            rank,
		Impact:           impact,
		Car:              car,
		Recommendations:  Recommendations(factsOf(metrics.ETOPSCompliant, impact)),
		CoverageRadiusKm: geo.CoverageRadiusKm(aircraft.ETOPSMinutes),
	}

	a.logger.InfoContext(ctx, "Route analyzed",
		"aircraft", aircraft.Model,
		"departure", route.Departure.IATA,
		"arrival", route.Arrival.IATA,
		"distance_km", metrics.DistanceKm,
		"etops_minutes", metrics.RequiredETOPSMinutes,
		"etops_compliant", metrics.ETOPSCompliant,
		"total", score.Total,
		"tier", rank.Label,
	)

	for _, r := range a.recorders {
		if err := r.Record(ctx, rep); err != nil {
			a.logger.WarnContext(ctx, "Failed to record analysis", "error", err)
		}
	}
	return rep, nil
}

// Coverage builds the ETOPS coverage map of aircraft on the route.
func (a *Analyzer) Coverage(model, dep, arr string, proj geo.Projection) (geom.GeoJSONFeatureCollection, error) {
	aircraft, from, to, err := a.Resolve(model, dep, arr)
	if err != nil {
		return nil, err
	}
	if core.NormalizeIATA(from.IATA) == core.NormalizeIATA(to.IATA) {
		return nil, core.NewInvalidInput("route", "departure and arrival are both %s", from.IATA)
	}
	alternates := withEndpoints(a.catalog.Airports(), core.Route{Departure: from, Arrival: to})
	return geo.Coverage(from, to, alternates, aircraft.ETOPSMinutes, proj)
}

// withEndpoints appends the route endpoints missing from alternates.
func withEndpoints(alternates []core.Airport, route core.Route) []core.Airport {
	for _, ep := range []core.Airport{route.Departure, route.Arrival} {
		code := core.NormalizeIATA(ep.IATA)
		found := false
		for _, ap := range alternates {
			if core.NormalizeIATA(ap.IATA) == code {
				found = true
				break
			}
		}
		if !found {
			alternates = append(alternates, ep)
		}
	}
	return alternates
}
