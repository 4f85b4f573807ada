package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Source names accepted by Connect.
const (
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Manager handles the reference data database connection.
type Manager struct {
	DB         *gorm.DB
	SqlDB      *sql.DB
	IsValid    bool
	UsedSource string
	Logger     zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
	}
}

// Connect opens the configured source. A Postgres source that cannot be
// reached falls back to the SQLite file at sqlitePath when one is given.
func (m *Manager) Connect(source, sqlitePath string) error {
	var err error

	switch source {
	case SourcePostgres:
		m.DB, err = GetPostgresDB(PostgresDSN())
		if err == nil {
			err = m.ping()
		}
		if err != nil {
			if sqlitePath == "" {
				m.IsValid = false
				return fmt.Errorf("failed to connect to Postgres DB: %w", err)
			}
			m.Logger.Error().Err(err).Str("path", sqlitePath).Msg("Failed to connect to Postgres DB, trying SQLite")
			return m.connectSQLite(sqlitePath)
		}
		m.UsedSource = SourcePostgres
		m.SqlDB.SetMaxOpenConns(10)
	case SourceSQLite:
		return m.connectSQLite(sqlitePath)
	default:
		return fmt.Errorf("unknown database source %q", source)
	}

	m.IsValid = true
	m.Logger.Info().Str("source", m.UsedSource).Msg("Connected to database")
	return nil
}

func (m *Manager) connectSQLite(path string) error {
	var err error
	m.DB, err = GetSqliteDB(path)
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to get local SQLite DB: %w", err)
	}
	if err = m.ping(); err != nil {
		m.IsValid = false
		return err
	}
	m.UsedSource = SourceSQLite
	m.IsValid = true
	if path == "" {
		m.Logger.Info().Msg("Using local SQLite DB in memory")
	} else {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	}
	return nil
}

func (m *Manager) ping() error {
	var err error
	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = m.SqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	m.IsValid = false
	return m.SqlDB.Close()
}

// PostgresDSN builds the Postgres DSN from the db.* config keys.
func PostgresDSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)
}

// GetPostgresDB returns a connection to the Postgres database.
func GetPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        1000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}

// DumpMemoryDBToDisk vacuums the in-memory database to a disk file,
// replacing any file already at sqliteFilePath.
func DumpMemoryDBToDisk(db *gorm.DB, sqliteFilePath string, log zerolog.Logger) error {
	if sqliteFilePath == "" {
		return fmt.Errorf("sqlite file path not set")
	}

	// remove existing file if it exists
	if exists, err := os.Stat(sqliteFilePath); err == nil && exists != nil {
		if err := os.Remove(sqliteFilePath); err != nil {
			return fmt.Errorf("error removing existing DB file: %s", err)
		}
	}

	start := time.Now()
	err := db.Exec("VACUUM INTO 'file:" + sqliteFilePath + "';").Error
	if err != nil {
		return fmt.Errorf("error dumping memory DB to disk: %s", err)
	}

	log.Debug().Dur("duration", time.Since(start)).Str("path", sqliteFilePath).Msg("Dumped memory DB to disk")
	return nil
}
