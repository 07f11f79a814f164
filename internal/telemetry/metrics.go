// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package telemetry provides OpenTelemetry instrumentation for conversions.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope for schemconvert metrics.
const MeterName = "github.com/pdiddy/schemconvert/convert"

// Metrics holds the conversion instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	filesTotal    metric.Int64Counter
	fileDuration  metric.Float64Histogram
	batchDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on provider. If provider is nil, it
// returns nil (no-op metrics).
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(MeterName)

	filesTotal, err := meter.Int64Counter(
		"schemconvert_files_total",
		metric.WithDescription("Files processed, by outcome"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, err
	}

	fileDuration, err := meter.Float64Histogram(
		"schemconvert_file_duration_seconds",
		metric.WithDescription("Time to convert one file in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30),
	)
	if err != nil {
		return nil, err
	}

	batchDuration, err := meter.Float64Histogram(
		"schemconvert_batch_duration_seconds",
		metric.WithDescription("Time to convert a whole batch in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 30, 60, 300, 900),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		filesTotal:    filesTotal,
		fileDuration:  fileDuration,
		batchDuration: batchDuration,
	}, nil
}

// RecordFile records one per-file outcome.
func (m *Metrics) RecordFile(ctx context.Context, source, target, status string, d time.Duration) {
	if m == nil || m.filesTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("source", source),
		attribute.String("target", target),
	)
	m.filesTotal.Add(ctx, 1, attrs)
	m.fileDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordBatch records the wall time of a finished batch.
func (m *Metrics) RecordBatch(ctx context.Context, source, target string, files int, d time.Duration) {
	if m == nil || m.batchDuration == nil {
		return
	}

	m.batchDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("target", target),
		attribute.Int("files", files),
	))
}
