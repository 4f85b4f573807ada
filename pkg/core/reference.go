// pkg/core/reference.go
package core

import "strings"

// LatLon is a geographic position in decimal degrees (EPSG:4326).
type LatLon struct {
	Lat float64
	Lon float64
}

// Aircraft is an immutable reference record from the aircraft table.
type Aircraft struct {
	Model           string
	Manufacturer    string
	Category        string
	Capacity        int
	SpeedKmh        float64
	RangeKm         float64
	ETOPSMinutes    float64
	FuelLPerKm      float64
	CO2KgPerKm      float64
	PriceMillionUSD float64
	SDGScore        float64
}

// Airport is an immutable reference record from the airport table.
// IATA is the unique key.
type Airport struct {
	IATA      string
	Name      string
	Latitude  float64
	Longitude float64
}

// Position returns the airport location.
func (a Airport) Position() LatLon {
	return LatLon{Lat: a.Latitude, Lon: a.Longitude}
}

// NormalizeIATA upper-cases and trims an airport code for lookups.
func NormalizeIATA(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
