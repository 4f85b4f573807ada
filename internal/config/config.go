package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "etops.cfg.json"

// DataConfig selects where the reference tables are read from.
type DataConfig struct {
	Source       string `json:"source" mapstructure:"source"`
	AircraftPath string `json:"aircraftPath" mapstructure:"aircraftPath"`
	AirportsPath string `json:"airportsPath" mapstructure:"airportsPath"`
	SQLitePath   string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// LogConfig holds log level, file rotation and Graylog settings.
type LogConfig struct {
	Level          string
	Dir            string
	MaxSizeMB      int
	MaxBackups     int
	GraylogEnabled bool
	GraylogAddress string
}

// InfluxConfig holds the InfluxDB connection used for analysis points.
type InfluxConfig struct {
	Enabled    bool
	Host       string
	Port       string
	Protocol   string
	Token      string
	Org        string
	Bucket     string
	BackupPath string
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"log-level":   "logLevel",
	"data-source": "data.source",
	"seed":        "challenge.seed",
	"projection":  "map.projection",
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./etopslogs")
	viper.SetDefault("logFile.maxSizeMB", 32)
	viper.SetDefault("logFile.maxBackups", 3)

	viper.SetDefault("data.source", "csv")
	viper.SetDefault("data.aircraftPath", "data/aircraft.csv")
	viper.SetDefault("data.airportsPath", "data/airports.csv")
	viper.SetDefault("data.sqlitePath", "data/reference.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "etops")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "etops-metrics")
	viper.SetDefault("influx.bucket", "etops_analysis")
	viper.SetDefault("influx.backupPath", "./etopslogs/influx_backup.lp.gz")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "etops-engine")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("challenge.seed", 0)
	viper.SetDefault("map.projection", "4326")

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// LoadOptional is Load without the file requirement: a missing config file
// leaves the defaults in place. A malformed file is still an error.
func LoadOptional(configDir string) (found bool, err error) {
	setDefaults()
	viper.AddConfigPath(configDir)

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("error reading config file: %v", err)
	}
	return true, nil
}

// BindFlags binds the known CLI flags present in fs to their config keys,
// so an explicitly set flag wins over the file.
func BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// GetDataConfig returns the reference data source settings.
func GetDataConfig() DataConfig {
	return DataConfig{
		Source:       viper.GetString("data.source"),
		AircraftPath: viper.GetString("data.aircraftPath"),
		AirportsPath: viper.GetString("data.airportsPath"),
		SQLitePath:   viper.GetString("data.sqlitePath"),
	}
}

// GetLogConfig returns the logging settings.
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:          viper.GetString("logLevel"),
		Dir:            viper.GetString("logsDir"),
		MaxSizeMB:      viper.GetInt("logFile.maxSizeMB"),
		MaxBackups:     viper.GetInt("logFile.maxBackups"),
		GraylogEnabled: viper.GetBool("graylog.enabled"),
		GraylogAddress: viper.GetString("graylog.address"),
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Protocol:   viper.GetString("influx.protocol"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}
