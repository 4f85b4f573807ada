package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/spf13/pflag"

	"github.com/etops-strategy/engine/internal/analysis"
	"github.com/etops-strategy/engine/internal/challenge"
	"github.com/etops-strategy/engine/internal/config"
	"github.com/etops-strategy/engine/internal/geo"
	"github.com/etops-strategy/engine/internal/logging"
	"github.com/etops-strategy/engine/internal/title"
	"github.com/etops-strategy/engine/pkg/core"
)

var errMissingFlag = errors.New("missing required flag")

// required checks name/value pairs in order.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w --%s", errMissingFlag, pairs[i])
		}
	}
	return nil
}

func aircraftCmd(_ *pflag.FlagSet) func(context.Context, io.Writer) error {
	return func(_ context.Context, out io.Writer) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MODEL\tMANUFACTURER\tCATEGORY\tSEATS\tSPEED\tRANGE\tETOPS\tSDG")
		for _, a := range catalog.Aircraft() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f\t%.0f\t%.0f\t%.1f\n",
				a.Model, a.Manufacturer, a.Category, a.Capacity, a.SpeedKmh, a.RangeKm, a.ETOPSMinutes, a.SDGScore)
		}
		return tw.Flush()
	}
}

func airportsCmd(_ *pflag.FlagSet) func(context.Context, io.Writer) error {
	return func(_ context.Context, out io.Writer) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "IATA\tNAME\tLAT\tLON")
		for _, code := range catalog.IATACodes() {
			ap, _ := catalog.AirportByIATA(code)
			fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", ap.IATA, ap.Name, ap.Latitude, ap.Longitude)
		}
		return tw.Flush()
	}
}

func analyzeCmd(fs *pflag.FlagSet) func(context.Context, io.Writer) error {
	model := fs.String("aircraft", "", "aircraft model")
	from := fs.String("from", "", "departure IATA code")
	to := fs.String("to", "", "arrival IATA code")
	passengers := fs.Int("passengers", 0, "booked passengers")
	asJSON := fs.Bool("json", false, "print the report as JSON")

	return func(ctx context.Context, out io.Writer) error {
		if err := required("aircraft", *model, "from", *from, "to", *to); err != nil {
			return err
		}
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		a := analysis.New(catalog, Logger, newRecorders(ctx)...)
		rep, err := a.Analyze(ctx, *model, *from, *to, *passengers)
		if err != nil {
			return err
		}
		if *asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		printReport(out, rep)
		return nil
	}
}

func printReport(out io.Writer, rep analysis.Report) {
	m := rep.Metrics
	compliance := "met"
	if !m.ETOPSCompliant {
		compliance = "NOT met"
	}

	fmt.Fprintf(out, "%s  %s -> %s  (%d passengers)\n\n", rep.Aircraft.Model, rep.Route.Departure.IATA, rep.Route.Arrival.IATA, rep.Route.Passengers)
	fmt.Fprintf(out, "Distance            %8.0f km\n", m.DistanceKm)
	fmt.Fprintf(out, "Worst diversion     %8.0f km\n", m.RequiredDiversionKm)
	fmt.Fprintf(out, "ETOPS required      %8.0f min (rated %.0f, %s)\n", m.RequiredETOPSMinutes, rep.Aircraft.ETOPSMinutes, compliance)
	fmt.Fprintf(out, "Fuel                %8.0f L\n", m.TotalFuelL)
	fmt.Fprintf(out, "CO2                 %8.0f kg (%.1f kg per passenger)\n", m.TotalCO2Kg, m.CO2PerPassengerKg)
	fmt.Fprintf(out, "Utilization         %8.1f %%\n", m.CapacityUtilization*100)
	fmt.Fprintf(out, "Versus car          %8.1f %% CO2\n", -rep.Car.ReductionPct)
	fmt.Fprintf(out, "SDG impact          %8.1f / 10\n\n", rep.Impact.TotalSDGScore)

	s := rep.Score
	fmt.Fprintf(out, "Score %d/100  (ETOPS %d, environment %d, efficiency %d, aircraft %d)\n",
		s.Total, s.ETOPS, s.Environmental, s.Efficiency, s.AircraftDisplay)
	fmt.Fprintf(out, "Challenge %d/105  (distance bonus %d)\n", rep.Detailed.ChallengeTotal, rep.Detailed.DistanceBonus)
	fmt.Fprintf(out, "Title %s [%s]\n", rep.Title.Label, rep.Title.Badge)
	for _, r := range rep.Recommendations {
		fmt.Fprintf(out, "  - %s\n", r)
	}
}

func coverageCmd(fs *pflag.FlagSet) func(context.Context, io.Writer) error {
	model := fs.String("aircraft", "", "aircraft model")
	from := fs.String("from", "", "departure IATA code")
	to := fs.String("to", "", "arrival IATA code")
	outPath := fs.String("out", "", "write GeoJSON to this file instead of stdout")
	fs.String("projection", "4326", "output projection: 4326 or 3857")

	return func(_ context.Context, out io.Writer) error {
		if err := required("aircraft", *model, "from", *from, "to", *to); err != nil {
			return err
		}
		proj, err := geo.ParseProjection(config.GetString("map.projection"))
		if err != nil {
			return err
		}
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		a := analysis.New(catalog, Logger)
		fc, err := a.Coverage(*model, *from, *to, proj)
		if errors.Is(err, core.ErrInvalidInput) {
			return err
		}
		var data []byte
		if err == nil {
			data, err = marshalCoverage(fc)
		}
		if err != nil {
			Logger.Warn("Coverage map export failed, printing route summary", "error", err)
			aircraft, dep, arr, rerr := a.Resolve(*model, *from, *to)
			if rerr != nil {
				return rerr
			}
			return printRouteSummary(out, aircraft, dep, arr)
		}

		if *outPath == "" {
			_, err = fmt.Fprintln(out, string(data))
			return err
		}
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write coverage: %w", err)
		}
		Logger.Info("Wrote coverage map", "path", *outPath, "features", len(fc), "projection", string(proj))
		return nil
	}
}

// marshalCoverage encodes the coverage map; tests swap it to force a failure.
var marshalCoverage = func(fc geom.GeoJSONFeatureCollection) ([]byte, error) {
	return json.Marshal(fc)
}

func printRouteSummary(out io.Writer, aircraft core.Aircraft, dep, arr core.Airport) error {
	_, err := fmt.Fprintf(out, "%s  %s -> %s\nDistance            %8.0f km\nCoverage radius     %8.0f km (ETOPS %.0f min)\n",
		aircraft.Model, dep.IATA, arr.IATA,
		geo.Distance(dep.Position(), arr.Position()),
		geo.CoverageRadiusKm(aircraft.ETOPSMinutes), aircraft.ETOPSMinutes)
	return err
}

func challengeCmd(fs *pflag.FlagSet) func(context.Context, io.Writer) error {
	model := fs.String("aircraft", "", "aircraft model flown on every route")
	difficulty := fs.String("difficulty", "medium", "easy, medium or hard")
	fs.Int64("seed", 0, "route generator seed, 0 for time based")

	return func(ctx context.Context, out io.Writer) error {
		if err := required("aircraft", *model); err != nil {
			return err
		}
		level, err := core.ParseDifficulty(strings.ToLower(*difficulty))
		if err != nil {
			return err
		}
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		seed := config.GetInt64("challenge.seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		agg := challenge.NewAggregator(challenge.NewRandomGenerator(catalog.Airports(), seed))

		a := analysis.New(catalog, Logger, newRecorders(ctx)...)

		if err := agg.Start(level); err != nil {
			return err
		}
		ctx = logging.ContextWith(ctx, slog.String("difficulty", string(level)), slog.Int64("seed", seed))
		Logger.InfoContext(ctx, "Challenge started", "aircraft", *model)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tROUTE\tKM\tPAX\tETOPS\tSCORE")
		for agg.State() == challenge.StateInProgress {
			roundCtx := logging.ContextWith(ctx, slog.Int("challenge_route", agg.Index()+1))
			rep, err := a.ChallengeRound(roundCtx, agg, *model)
			if err != nil {
				return err
			}
			done := agg.Routes()[agg.Index()-1]
			etops := "ok"
			if !rep.Metrics.ETOPSCompliant {
				etops = "no"
			}
			fmt.Fprintf(tw, "%d\t%s-%s\t%.0f\t%d\t%s\t%d\n",
				done.Number, done.Departure, done.Arrival, done.DistanceKm, rep.Route.Passengers, etops, done.Score)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		avg, _ := agg.Average()
		rank, err := title.ClassifyChallenge(int(math.Round(avg)))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nTotal %d, average %.1f/105 on %s, title %s [%s]\n", agg.Total(), avg, agg.Difficulty(), rank.Label, rank.Badge)
		return nil
	}
}

func seedCmd(fs *pflag.FlagSet) func(context.Context, io.Writer) error {
	target := fs.String("target", "sqlite", "database to seed: sqlite or postgres")

	return func(_ context.Context, out io.Writer) error {
		if err := seedDatabase(strings.ToLower(*target)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "seeded %s reference tables\n", strings.ToLower(*target))
		return err
	}
}
