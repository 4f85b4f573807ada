package refdata

import (
	"fmt"

	"github.com/etops-strategy/engine/pkg/core"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AircraftRecord is the database row of the aircraft table.
type AircraftRecord struct {
	Model           string  `json:"model" gorm:"primaryKey;size:127"`
	Manufacturer    string  `json:"manufacturer" gorm:"size:127"`
	Category        string  `json:"category" gorm:"size:63"`
	Capacity        int     `json:"capacity"`
	Speed           float64 `json:"speed"`
	Range           float64 `json:"range"`
	ETOPS           float64 `json:"etops" gorm:"column:etops"`
	FuelLPerKm      float64 `json:"fuelLPerKm" gorm:"column:fuel_l_per_km"`
	CO2KgPerKm      float64 `json:"co2KgPerKm" gorm:"column:co2_kg_per_km"`
	PriceMillionUSD float64 `json:"priceMillionUsd" gorm:"column:price_million_usd"`
	SDGScore        float64 `json:"sdgScore" gorm:"column:sdg_score"`
}

// TableName pins the table name.
func (AircraftRecord) TableName() string {
	return "aircraft"
}

// AirportRecord is the database row of the airport table.
type AirportRecord struct {
	IATA      string  `json:"iata" gorm:"primaryKey;column:iata;size:8"`
	Name      string  `json:"name" gorm:"size:255"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TableName pins the table name.
func (AirportRecord) TableName() string {
	return "airports"
}

// DatabaseModels lists the tables owned by this package.
var DatabaseModels = []interface{}{
	&AircraftRecord{},
	&AirportRecord{},
}

func (r AircraftRecord) toCore() core.Aircraft {
	return core.Aircraft{
		Model:           r.Model,
		Manufacturer:    r.Manufacturer,
		Category:        r.Category,
		Capacity:        r.Capacity,
		SpeedKmh:        r.Speed,
		RangeKm:         r.Range,
		ETOPSMinutes:    r.ETOPS,
		FuelLPerKm:      r.FuelLPerKm,
		CO2KgPerKm:      r.CO2KgPerKm,
		PriceMillionUSD: r.PriceMillionUSD,
		SDGScore:        r.SDGScore,
	}
}

func aircraftRecord(a core.Aircraft) AircraftRecord {
	return AircraftRecord{
		Model:           a.Model,
		Manufacturer:    a.Manufacturer,
		Category:        a.Category,
		Capacity:        a.Capacity,
		Speed:           a.SpeedKmh,
		Range:           a.RangeKm,
		ETOPS:           a.ETOPSMinutes,
		FuelLPerKm:      a.FuelLPerKm,
		CO2KgPerKm:      a.CO2KgPerKm,
		PriceMillionUSD: a.PriceMillionUSD,
		SDGScore:        a.SDGScore,
	}
}

// LoadDB reads both tables and validates them like the CSV loader does.
func LoadDB(db *gorm.DB) (*Catalog, error) {
	source := "db:" + db.Dialector.Name()
	for _, m := range DatabaseModels {
		if !db.Migrator().HasTable(m) {
			return nil, &core.ConfigurationError{Source: source, Reason: fmt.Sprintf("table for %T is missing", m)}
		}
	}

	var aircraftRows []AircraftRecord
	if err := db.Order("model ASC").Find(&aircraftRows).Error; err != nil {
		return nil, &core.ConfigurationError{Source: source, Column: "aircraft", Reason: err.Error()}
	}
	var airportRows []AirportRecord
	if err := db.Order("iata ASC").Find(&airportRows).Error; err != nil {
		return nil, &core.ConfigurationError{Source: source, Column: "airports", Reason: err.Error()}
	}

	aircraft := make([]core.Aircraft, len(aircraftRows))
	for i, r := range aircraftRows {
		aircraft[i] = r.toCore()
	}
	airports := make([]core.Airport, len(airportRows))
	for i, r := range airportRows {
		airports[i] = core.Airport{IATA: r.IATA, Name: r.Name, Latitude: r.Latitude, Longitude: r.Longitude}
	}
	return NewCatalog(source, aircraft, airports)
}

// Seed migrates the reference tables and upserts every catalog entry.
func Seed(db *gorm.DB, c *Catalog) error {
	if err := db.AutoMigrate(DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate reference tables: %w", err)
	}

	aircraft := make([]AircraftRecord, 0, len(c.aircraft))
	for _, a := range c.aircraft {
		aircraft = append(aircraft, aircraftRecord(a))
	}
	airports := make([]AirportRecord, 0, len(c.airports))
	for _, ap := range c.airports {
		airports = append(airports, AirportRecord{IATA: ap.IATA, Name: ap.Name, Latitude: ap.Latitude, Longitude: ap.Longitude})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(aircraft, 500).Error; err != nil {
			return fmt.Errorf("failed to seed aircraft: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(airports, 500).Error; err != nil {
			return fmt.Errorf("failed to seed airports: %w", err)
		}
		return nil
	})
}
