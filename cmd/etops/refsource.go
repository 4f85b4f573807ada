package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etops-strategy/engine/internal/analysis"
	"github.com/etops-strategy/engine/internal/config"
	"github.com/etops-strategy/engine/internal/database"
	"github.com/etops-strategy/engine/internal/influx"
	"github.com/etops-strategy/engine/internal/refdata"
)

// loadCatalog reads the reference tables from the configured source.
func loadCatalog() (*refdata.Catalog, error) {
	dc := config.GetDataConfig()
	Logger.Debug("Loading reference data", "source", dc.Source)

	switch dc.Source {
	case "csv":
		return refdata.LoadCSVFiles(dc.AircraftPath, dc.AirportsPath)

	case database.SourceSQLite, database.SourcePostgres:
		m := database.NewManager(ZLogger)
		if err := m.Connect(dc.Source, dc.SQLitePath); err != nil {
			return nil, err
		}
		defer m.Close()
		if m.UsedSource != dc.Source {
			Logger.Warn("Reference data read from fallback source", "wanted", dc.Source, "used", m.UsedSource)
		}
		return refdata.LoadDB(m.DB)

	default:
		return nil, fmt.Errorf("unknown data source %q", dc.Source)
	}
}

// seedDatabase copies the CSV tables into target.
func seedDatabase(target string) error {
	dc := config.GetDataConfig()
	catalog, err := refdata.LoadCSVFiles(dc.AircraftPath, dc.AirportsPath)
	if err != nil {
		return err
	}

	switch target {
	case database.SourceSQLite:
		// build in memory, then vacuum into the file in one step
		db, err := database.GetSqliteDB("")
		if err != nil {
			return fmt.Errorf("failed to open in-memory SQLite DB: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := refdata.Seed(db, catalog); err != nil {
			return err
		}
		if dir := filepath.Dir(dc.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		if err := database.DumpMemoryDBToDisk(db, dc.SQLitePath, ZLogger); err != nil {
			return err
		}
		Logger.Info("Seeded SQLite reference DB", "path", dc.SQLitePath,
			"aircraft", len(catalog.Aircraft()), "airports", len(catalog.Airports()))
		return nil

	case database.SourcePostgres:
		m := database.NewManager(ZLogger)
		if err := m.Connect(database.SourcePostgres, ""); err != nil {
			return err
		}
		defer m.Close()
		if err := refdata.Seed(m.DB, catalog); err != nil {
			return err
		}
		Logger.Info("Seeded Postgres reference DB",
			"aircraft", len(catalog.Aircraft()), "airports", len(catalog.Airports()))
		return nil

	default:
		return fmt.Errorf("unknown seed target %q (want sqlite or postgres)", target)
	}
}

// newRecorders builds the OTel and Influx recorders that are enabled.
func newRecorders(ctx context.Context) []analysis.Recorder {
	var recorders []analysis.Recorder

	if OTelProvider != nil && OTelProvider.Enabled() {
		metrics, err := analysis.NewMetricsRecorder(OTelProvider.Meter(AppName))
		if err != nil {
			Logger.Warn("Failed to create analysis metrics", "error", err)
		} else {
			recorders = append(recorders, metrics)
		}
	}

	ic := config.GetInfluxConfig()
	if !ic.Enabled {
		return recorders
	}
	m := influx.NewManager(ZLogger, ic)
	if err := m.Connect(ctx); err != nil {
		Logger.Warn("InfluxDB unavailable, analysis points not recorded", "error", err)
		return recorders
	}
	closers = append(closers, m)
	return append(recorders, analysis.NewInfluxRecorder(m))
}
