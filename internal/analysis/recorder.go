package analysis

import (
	"context"
	"fmt"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/etops-strategy/engine/internal/influx"
)

// Recorder receives every successful analysis.
type Recorder interface {
	Record(ctx context.Context, r Report) error
}

// MetricsRecorder feeds OTel instruments.
type MetricsRecorder struct {
	analyses  metric.Int64Counter
	scores    metric.Int64Histogram
	diversion metric.Float64Histogram
}

// NewMetricsRecorder creates the analysis instruments on meter.
func NewMetricsRecorder(meter metric.Meter) (*MetricsRecorder, error) {
	analyses, err := meter.Int64Counter("etops.analyses",
		metric.WithDescription("Route analyses performed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyses counter: %w", err)
	}
	scores, err := meter.Int64Histogram("etops.score.total",
		metric.WithDescription("Base route score"))
	if err != nil {
		return nil, fmt.Errorf("failed to create score histogram: %w", err)
	}
	diversion, err := meter.Float64Histogram("etops.diversion.minutes",
		metric.WithDescription("Required ETOPS diversion time"),
		metric.WithUnit("min"))
	if err != nil {
		return nil, fmt.Errorf("failed to create diversion histogram: %w", err)
	}
	return &MetricsRecorder{analyses: analyses, scores: scores, diversion: diversion}, nil
}

// Record implements Recorder.
func (m *MetricsRecorder) Record(ctx context.Context, r Report) error {
	attrs := metric.WithAttributes(
		attribute.String("aircraft", r.Aircraft.Model),
		attribute.Bool("etops_compliant", r.Metrics.ETOPSCompliant),
	)
	m.analyses.Add(ctx, 1, attrs)
	m.scores.Record(ctx, int64(r.Score.Total), attrs)
	m.diversion.Record(ctx, r.Metrics.RequiredETOPSMinutes, attrs)
	return nil
}

// PointWriter accepts InfluxDB points. *influx.Manager implements it.
type PointWriter interface {
	WritePoint(point *influxdb2_write.Point) error
}

// InfluxRecorder writes one route_analysis point per report.
type InfluxRecorder struct {
	w PointWriter
}

// NewInfluxRecorder wraps w.
func NewInfluxRecorder(w PointWriter) *InfluxRecorder {
	return &InfluxRecorder{w: w}
}

// Record implements Recorder.
func (ir *InfluxRecorder) Record(_ context.Context, r Report) error {
	return ir.w.WritePoint(influx.NewAnalysisPoint(Sample(r)))
}

// Sample flattens a report for the metrics store.
func Sample(r Report) influx.AnalysisSample {
	return influx.AnalysisSample{
		Aircraft:    r.Aircraft.Model,
		Departure:   r.Route.Departure.IATA,
		Arrival:     r.Route.Arrival.IATA,
		Tier:        r.Title.Label,
		Compliant:   r.Metrics.ETOPSCompliant,
		Passengers:  r.Route.Passengers,
		DistanceKm:  r.Metrics.DistanceKm,
		DiversionKm: r.Metrics.RequiredDiversionKm,
		ETOPSNeeded: r.Metrics.RequiredETOPSMinutes,
		CO2PerPax:   r.Metrics.CO2PerPassengerKg,
		Utilization: r.Metrics.CapacityUtilization,
		Total:       r.Score.Total,
	}
}
