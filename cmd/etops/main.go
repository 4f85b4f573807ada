package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/etops-strategy/engine/internal/config"
	"github.com/etops-strategy/engine/internal/logging"
	intOtel "github.com/etops-strategy/engine/internal/otel"
)

// build info - Version and BuildDate can be set at build time via ldflags
var (
	Version   string = "0.1.0"
	BuildDate string = "unknown"

	AppName string = "etops"
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// ZLogger is handed to the database and influx managers
	ZLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	LogFilePath string

	SessionStartTime time.Time = time.Now()

	// closed in reverse order on shutdown
	closers []io.Closer
)

// command registers its flags on fs and returns the function that runs it
// once flags are parsed and logging is up.
type command struct {
	summary string
	setup   func(fs *pflag.FlagSet) func(ctx context.Context, out io.Writer) error
}

var commands = map[string]command{
	"aircraft":  {"list the aircraft table", aircraftCmd},
	"airports":  {"list the airport table", airportsCmd},
	"analyze":   {"score an aircraft on a route", analyzeCmd},
	"coverage":  {"export the ETOPS coverage map as GeoJSON", coverageCmd},
	"challenge": {"play a 10 route challenge with one aircraft", challengeCmd},
	"seed":      {"copy the CSV reference tables into a database", seedCmd},
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return errors.New("no command provided")
	}
	name := strings.ToLower(args[0])
	cmd, ok := commands[name]
	if !ok {
		printUsage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	configDir := fs.String("config", ".", "directory containing "+config.FileName)
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("data-source", "csv", "reference data source: csv, sqlite, postgres")
	runCmd := cmd.setup(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if err := setup(ctx, *configDir, fs); err != nil {
		return err
	}
	defer shutdown(ctx)

	Logger.Debug("Running command", "command", name, "version", Version, "build", BuildDate)
	if err := runCmd(ctx, out); err != nil {
		Logger.Error("Command failed", "command", name, "error", err)
		return err
	}
	return nil
}

func printUsage(out io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "%s %s\n\nUsage: %s <command> [flags]\n\nCommands:\n", AppName, Version, AppName)
	for _, name := range names {
		fmt.Fprintf(out, "  %-10s %s\n", name, commands[name].summary)
	}
}

// setup loads the config and builds the log sinks.
func setup(ctx context.Context, configDir string, fs *pflag.FlagSet) error {
	found, err := config.LoadOptional(configDir)
	if err != nil {
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}

	lc := config.GetLogConfig()
	if err := os.MkdirAll(lc.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs dir: %w", err)
	}
	LogFilePath = logging.LogFilePath(lc.Dir, AppName, SessionStartTime)
	logFile := logging.RotatingFile(LogFilePath, lc.MaxSizeMB, lc.MaxBackups)
	closers = append(closers, logFile)

	ZLogger = logging.NewZerolog(logFile, lc.Level)

	var startupWarnings []string

	var graylog io.Writer
	if lc.GraylogEnabled {
		w, err := logging.GraylogWriter(lc.GraylogAddress)
		if err != nil {
			startupWarnings = append(startupWarnings, err.Error())
		} else {
			graylog = w
			closers = append(closers, w)
		}
	}

	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(ctx, intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    logFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		startupWarnings = append(startupWarnings, err.Error())
		OTelProvider, _ = intOtel.New(ctx, intOtel.Config{Enabled: false})
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(logging.Options{
		Level:       lc.Level,
		File:        logFile,
		Graylog:     graylog,
		Provider:    OTelProvider.LoggerProvider(),
		ServiceName: otelCfg.ServiceName,
	})
	Logger = SlogManager.Logger()

	if !found {
		Logger.Warn("Config file not found, using defaults", "dir", configDir)
	}
	for _, w := range startupWarnings {
		Logger.Warn("Optional log sink unavailable", "error", w)
	}
	Logger.Info("Begin logging in logs directory", "path", LogFilePath)
	return nil
}

func shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if SlogManager != nil {
		if err := SlogManager.Flush(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "failed to flush logs:", err)
		}
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "failed to shut down otel:", err)
		}
	}
	for i := len(closers) - 1; i >= 0; i-- {
		_ = closers[i].Close()
	}
	closers = nil
}
