// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider is an in-process meter provider whose data is read on demand
// and written to the log, for one-shot CLI runs with no collector.
type Provider struct {
	*sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

// NewProvider creates a meter provider backed by a manual reader.
func NewProvider() *Provider {
	reader := sdkmetric.NewManualReader()
	return &Provider{
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader:        reader,
	}
}

// Collect returns the data recorded so far.
func (p *Provider) Collect(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return rm, fmt.Errorf("collecting metrics: %w", err)
	}
	return rm, nil
}

// Flush logs every collected data point at info level and shuts the
// provider down.
func (p *Provider) Flush(ctx context.Context, logger *slog.Logger) error {
	rm, err := p.Collect(ctx)
	if err != nil {
		return err
	}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			logDataPoints(logger, m)
		}
	}
	if err := p.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %w", err)
	}
	return nil
}

func logDataPoints(logger *slog.Logger, m metricdata.Metrics) {
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		for _, dp := range data.DataPoints {
			logger.Info("metric", "name", m.Name, "value", dp.Value, "attributes", dp.Attributes.Encoded(attribute.DefaultEncoder()))
		}
	case metricdata.Histogram[float64]:
		for _, dp := range data.DataPoints {
			logger.Info("metric", "name", m.Name, "count", dp.Count, "sum", dp.Sum, "attributes", dp.Attributes.Encoded(attribute.DefaultEncoder()))
		}
	default:
		logger.Debug("metric", "name", m.Name, "type", fmt.Sprintf("%T", m.Data))
	}
}
