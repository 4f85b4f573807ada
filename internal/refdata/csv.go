package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etops-strategy/engine/pkg/core"
)

// AircraftColumns is the required header of the aircraft table.
var AircraftColumns = []string{
	"Model", "Manufacturer", "Category", "Capacity", "Speed", "Range", "ETOPS",
	"Fuel_L_per_km", "CO2_kg_per_km", "Price_Million_USD", "SDG_Score",
}

// AirportColumns is the required header of the airport table.
var AirportColumns = []string{"IATA", "Name", "Latitude", "Longitude"}

// LoadCSVFiles opens both tables from disk and builds a Catalog.
func LoadCSVFiles(aircraftPath, airportsPath string) (*Catalog, error) {
	af, err := os.Open(aircraftPath)
	if err != nil {
		return nil, &core.ConfigurationError{Source: aircraftPath, Reason: err.Error()}
	}
	defer af.Close()

	pf, err := os.Open(airportsPath)
	if err != nil {
		return nil, &core.ConfigurationError{Source: airportsPath, Reason: err.Error()}
	}
	defer pf.Close()

	aircraft, aircraftLines, err := readAircraftCSV(aircraftPath, af)
	if err != nil {
		return nil, err
	}
	airports, airportLines, err := readAirportsCSV(airportsPath, pf)
	if err != nil {
		return nil, err
	}
	return newCatalog(origin{aircraftPath, aircraftLines}, origin{airportsPath, airportLines}, aircraft, airports)
}

// LoadCSV builds a Catalog from two CSV streams.
func LoadCSV(aircraftR, airportsR io.Reader) (*Catalog, error) {
	aircraft, aircraftLines, err := readAircraftCSV("aircraft", aircraftR)
	if err != nil {
		return nil, err
	}
	airports, airportLines, err := readAirportsCSV("airports", airportsR)
	if err != nil {
		return nil, err
	}
	return newCatalog(origin{"aircraft", aircraftLines}, origin{"airports", airportLines}, aircraft, airports)
}

// table is a CSV stream with its header resolved to column indexes.
// row is the input line of the current record; blank lines are skipped by
// the reader but still counted.
type table struct {
	source string
	reader *csv.Reader
	index  map[string]int
	row    int
}

func openTable(source string, r io.Reader, columns []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &core.ConfigurationError{Source: source, Reason: "missing header row"}
		}
		return nil, &core.ConfigurationError{Source: source, Row: 1, Reason: err.Error()}
	}

	t := &table{source: source, reader: reader, index: make(map[string]int, len(headers)), row: 1}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.index[h] = i
	}
	for _, col := range columns {
		if _, ok := t.index[col]; !ok {
			return nil, &core.ConfigurationError{Source: source, Row: 1, Column: col, Reason: "missing column"}
		}
	}
	return t, nil
}

// next returns the next record, or nil at end of input.
func (t *table) next() ([]string, error) {
	rec, err := t.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		row := t.row + 1
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			row = pe.StartLine
		}
		return nil, &core.ConfigurationError{Source: t.source, Row: row, Reason: err.Error()}
	}
	t.row, _ = t.reader.FieldPos(0)
	return rec, nil
}

func (t *table) str(rec []string, col string) (string, error) {
	i := t.index[col]
	if i >= len(rec) {
		return "", &core.ConfigurationError{Source: t.source, Row: t.row, Column: col, Reason: "value missing"}
	}
	return strings.TrimSpace(rec[i]), nil
}

func (t *table) floatValue(rec []string, col string) (float64, error) {
	s, err := t.str(rec, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &core.ConfigurationError{Source: t.source, Row: t.row, Column: col, Reason: fmt.Sprintf("non-numeric value %q", s)}
	}
	return v, nil
}

func (t *table) intValue(rec []string, col string) (int, error) {
	s, err := t.str(rec, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &core.ConfigurationError{Source: t.source, Row: t.row, Column: col, Reason: fmt.Sprintf("non-integer value %q", s)}
	}
	return v, nil
}

// readAircraftCSV parses the aircraft table and the line of each row.
// Range checks happen in newCatalog.
func readAircraftCSV(source string, r io.Reader) ([]core.Aircraft, []int, error) {
	t, err := openTable(source, r, AircraftColumns)
	if err != nil {
		return nil, nil, err
	}

	var out []core.Aircraft
	var lines []int
	for {
		rec, err := t.next()
		if err != nil {
			return nil, nil, err
		}
		if rec == nil {
			break
		}

		var a core.Aircraft
		if a.Model, err = t.str(rec, "Model"); err != nil {
			return nil, nil, err
		}
		if a.Manufacturer, err = t.str(rec, "Manufacturer"); err != nil {
			return nil, nil, err
		}
		if a.Category, err = t.str(rec, "Category"); err != nil {
			return nil, nil, err
		}
		if a.Capacity, err = t.intValue(rec, "Capacity"); err != nil {
			return nil, nil, err
		}
		numeric := []struct {
			col string
			dst *float64
		}{
			{"Speed", &a.SpeedKmh},
			{"Range", &a.RangeKm},
			{"ETOPS", &a.ETOPSMinutes},
			{"Fuel_L_per_km", &a.FuelLPerKm},
			{"CO2_kg_per_km", &a.CO2KgPerKm},
			{"Price_Million_USD", &a.PriceMillionUSD},
			{"SDG_Score", &a.SDGScore},
		}
		for _, n := range numeric {
			if *n.dst, err = t.floatValue(rec, n.col); err != nil {
				return nil, nil, err
			}
		}
		out = append(out, a)
		lines = append(lines, t.row)
	}
	return out, lines, nil
}

// readAirportsCSV parses the airport table and the line of each row.
// Range checks happen in newCatalog.
func readAirportsCSV(source string, r io.Reader) ([]core.Airport, []int, error) {
	t, err := openTable(source, r, AirportColumns)
	if err != nil {
		return nil, nil, err
	}

	var out []core.Airport
	var lines []int
	seen := map[string]int{}
	for {
		rec, err := t.next()
		if err != nil {
			return nil, nil, err
		}
		if rec == nil {
			break
		}

		var ap core.Airport
		if ap.IATA, err = t.str(rec, "IATA"); err != nil {
			return nil, nil, err
		}
		if ap.Name, err = t.str(rec, "Name"); err != nil {
			return nil, nil, err
		}
		if ap.Latitude, err = t.floatValue(rec, "Latitude"); err != nil {
			return nil, nil, err
		}
		if ap.Longitude, err = t.floatValue(rec, "Longitude"); err != nil {
			return nil, nil, err
		}

		code := core.NormalizeIATA(ap.IATA)
		if first, dup := seen[code]; dup {
			return nil, nil, &core.ConfigurationError{
				Source: source,
				Row:    t.row,
				Column: "IATA",
				Reason: fmt.Sprintf("duplicate IATA code %s (first seen on row %d)", code, first),
			}
		}
		seen[code] = t.row
		out = append(out, ap)
		lines = append(lines, t.row)
	}
	return out, lines, nil
}
