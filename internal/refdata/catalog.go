// Package refdata loads and validates the aircraft and airport reference tables.
package refdata

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/etops-strategy/engine/pkg/core"
)

// Catalog holds the validated reference tables. It is immutable after
// construction; accessors return copies.
type Catalog struct {
	aircraft []core.Aircraft
	airports []core.Airport
	byModel  map[string]int
	byIATA   map[string]int
}

// NewCatalog validates the tables and builds the lookup indexes.
// source names the origin of the data in error messages. Rows carry no line
// numbers, so failures name the offending model or IATA code instead.
func NewCatalog(source string, aircraft []core.Aircraft, airports []core.Airport) (*Catalog, error) {
	return newCatalog(origin{source: source}, origin{source: source}, aircraft, airports)
}

// origin locates the rows of one table. lines[i] is the source line of row i.
type origin struct {
	source string
	lines  []int
}

func (o origin) line(i int) int {
	if i < len(o.lines) {
		return o.lines[i]
	}
	return 0
}

// fail reports a bad value in row i. Without a line number, key identifies the row.
func (o origin) fail(i int, key, column, reason string) error {
	row := o.line(i)
	if row == 0 {
		reason = key + ": " + reason
	}
	return &core.ConfigurationError{Source: o.source, Row: row, Column: column, Reason: reason}
}

func newCatalog(aircraftAt, airportsAt origin, aircraft []core.Aircraft, airports []core.Airport) (*Catalog, error) {
	c := &Catalog{
		aircraft: make([]core.Aircraft, len(aircraft)),
		airports: make([]core.Airport, len(airports)),
		byModel:  make(map[string]int, len(aircraft)),
		byIATA:   make(map[string]int, len(airports)),
	}
	copy(c.aircraft, aircraft)
	copy(c.airports, airports)

	if len(c.aircraft) == 0 {
		return nil, &core.ConfigurationError{Source: aircraftAt.source, Reason: "aircraft table is empty"}
	}
	if len(c.airports) < 2 {
		return nil, &core.ConfigurationError{Source: airportsAt.source, Reason: "airport table needs at least 2 airports"}
	}

	for i, a := range c.aircraft {
		key := aircraftKey(i, a)
		if err := validateAircraft(aircraftAt, i, key, a); err != nil {
			return nil, err
		}
		mk := modelKey(a.Model)
		if _, dup := c.byModel[mk]; dup {
			return nil, aircraftAt.fail(i, key, "Model", "duplicate model "+a.Model)
		}
		c.byModel[mk] = i
	}

	for i, ap := range c.airports {
		c.airports[i].IATA = core.NormalizeIATA(ap.IATA)
		key := airportKey(i, c.airports[i])
		if err := validateAirport(airportsAt, i, key, c.airports[i]); err != nil {
			return nil, err
		}
		if _, dup := c.byIATA[c.airports[i].IATA]; dup {
			return nil, airportsAt.fail(i, key, "IATA", "duplicate IATA code "+c.airports[i].IATA)
		}
		c.byIATA[c.airports[i].IATA] = i
	}
	return c, nil
}

// Aircraft returns every aircraft in table order.
func (c *Catalog) Aircraft() []core.Aircraft {
	out := make([]core.Aircraft, len(c.aircraft))
	copy(out, c.aircraft)
	return out
}

// Airports returns every airport in table order.
func (c *Catalog) Airports() []core.Airport {
	out := make([]core.Airport, len(c.airports))
	copy(out, c.airports)
	return out
}

// AircraftByModel looks up an aircraft by model name, ignoring case.
func (c *Catalog) AircraftByModel(model string) (core.Aircraft, bool) {
	i, ok := c.byModel[modelKey(model)]
	if !ok {
		return core.Aircraft{}, false
	}
	return c.aircraft[i], true
}

// AirportByIATA looks up an airport by code, ignoring case.
func (c *Catalog) AirportByIATA(code string) (core.Airport, bool) {
	i, ok := c.byIATA[core.NormalizeIATA(code)]
	if !ok {
		return core.Airport{}, false
	}
	return c.airports[i], true
}

// IATACodes returns the sorted airport codes.
func (c *Catalog) IATACodes() []string {
	codes := make([]string, 0, len(c.byIATA))
	for code := range c.byIATA {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func modelKey(model string) string {
	return strings.ToLower(strings.TrimSpace(model))
}

func aircraftKey(i int, a core.Aircraft) string {
	if m := strings.TrimSpace(a.Model); m != "" {
		return fmt.Sprintf("aircraft %q", m)
	}
	return fmt.Sprintf("aircraft #%d", i+1)
}

func airportKey(i int, ap core.Airport) string {
	if ap.IATA != "" {
		return "airport " + ap.IATA
	}
	return fmt.Sprintf("airport #%d", i+1)
}

func validateAircraft(at origin, i int, key string, a core.Aircraft) error {
	fail := func(column, reason string) error {
		return at.fail(i, key, column, reason)
	}
	switch {
	case strings.TrimSpace(a.Model) == "":
		return fail("Model", "model name is empty")
	case a.Capacity <= 0:
		return fail("Capacity", "must be positive")
	case !positive(a.SpeedKmh):
		return fail("Speed", "must be positive")
	case !nonNegative(a.RangeKm):
		return fail("Range", "must be non-negative")
	case !nonNegative(a.ETOPSMinutes):
		return fail("ETOPS", "must be non-negative")
	case !positive(a.FuelLPerKm):
		return fail("Fuel_L_per_km", "must be positive")
	case !positive(a.CO2KgPerKm):
		return fail("CO2_kg_per_km", "must be positive")
	case !nonNegative(a.PriceMillionUSD):
		return fail("Price_Million_USD", "must be non-negative")
	case !(a.SDGScore >= 0 && a.SDGScore <= 10):
		return fail("SDG_Score", "must be within [0,10]")
	}
	return nil
}

func validateAirport(at origin, i int, key string, ap core.Airport) error {
	fail := func(column, reason string) error {
		return at.fail(i, key, column, reason)
	}
	switch {
	case ap.IATA == "":
		return fail("IATA", "code is empty")
	case !(ap.Latitude >= -90 && ap.Latitude <= 90):
		return fail("Latitude", "must be within [-90,90]")
	case !(ap.Longitude >= -180 && ap.Longitude <= 180):
		return fail("Longitude", "must be within [-180,180]")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
