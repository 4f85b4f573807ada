// Package otel wires the OpenTelemetry log and metric pipelines the engine
// exports analysis telemetry through.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds OTel configuration
type Config struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	LogWriter    io.Writer // receives both logs and metrics as JSON lines
	Endpoint     string    // OTLP/HTTP collector, optional
	Insecure     bool
}

// Provider owns the log and meter providers. A disabled Provider hands out
// no-op meters and a nil LoggerProvider.
type Provider struct {
	logProvider   *sdklog.LoggerProvider
	meterProvider *sdkmetric.MeterProvider
	config        Config
}

// New builds the pipelines described by cfg. Enabling OTel without any sink
// is a configuration error.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	p := &Provider{config: cfg}
	if !cfg.Enabled {
		return p, nil
	}
	if cfg.LogWriter == nil && cfg.Endpoint == "" {
		return nil, errors.New("OTel enabled but no log writer or endpoint configured")
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	logOpts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.LogWriter != nil {
		logExp, err := stdoutlog.New(stdoutlog.WithWriter(cfg.LogWriter))
		if err != nil {
			return nil, fmt.Errorf("failed to create file log exporter: %w", err)
		}
		metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.LogWriter))
		if err != nil {
			return nil, fmt.Errorf("failed to create file metric exporter: %w", err)
		}
		logOpts = append(logOpts, sdklog.WithProcessor(p.batch(logExp)))
		meterOpts = append(meterOpts, sdkmetric.WithReader(p.reader(metricExp)))
	}

	if cfg.Endpoint != "" {
		logHTTP := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		metricHTTP := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			logHTTP = append(logHTTP, otlploghttp.WithInsecure())
			metricHTTP = append(metricHTTP, otlpmetrichttp.WithInsecure())
		}
		logExp, err := otlploghttp.New(ctx, logHTTP...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}
		metricExp, err := otlpmetrichttp.New(ctx, metricHTTP...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
		logOpts = append(logOpts, sdklog.WithProcessor(p.batch(logExp)))
		meterOpts = append(meterOpts, sdkmetric.WithReader(p.reader(metricExp)))
	}

	p.logProvider = sdklog.NewLoggerProvider(logOpts...)
	p.meterProvider = sdkmetric.NewMeterProvider(meterOpts...)
	return p, nil
}

func (p *Provider) batch(exp sdklog.Exporter) sdklog.Processor {
	var opts []sdklog.BatchProcessorOption
	if p.config.BatchTimeout > 0 {
		opts = append(opts, sdklog.WithExportTimeout(p.config.BatchTimeout))
	}
	return sdklog.NewBatchProcessor(exp, opts...)
}

func (p *Provider) reader(exp sdkmetric.Exporter) sdkmetric.Reader {
	var opts []sdkmetric.PeriodicReaderOption
	if p.config.BatchTimeout > 0 {
		opts = append(opts, sdkmetric.WithTimeout(p.config.BatchTimeout))
	}
	return sdkmetric.NewPeriodicReader(exp, opts...)
}

// LoggerProvider returns the log provider for the otelslog bridge, nil when disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logProvider
}

// Meter returns a meter for the analysis instruments.
func (p *Provider) Meter(name string) metric.Meter {
	if p.meterProvider == nil {
		return noop.Meter{}
	}
	return p.meterProvider.Meter(name)
}

// Shutdown flushes and stops both pipelines. Call once on exit.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.logProvider != nil {
		if err := p.logProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("log shutdown failed: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metric shutdown failed: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Enabled reports whether the pipelines were built.
func (p *Provider) Enabled() bool {
	return p.config.Enabled
}
