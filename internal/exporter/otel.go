package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sorah/mackerel-plugin-bird/internal/config"
	"github.com/sorah/mackerel-plugin-bird/internal/metric"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "github.com/sorah/mackerel-plugin-bird"

// instrument holds an OTEL observable instrument and the value it reports.
type instrument struct {
	counter otelmetric.Int64ObservableCounter
	gauge   otelmetric.Int64ObservableGauge
	value   int64
}

// PushOTLP sends a single collection of observations to an OTLP endpoint.
func PushOTLP(ctx context.Context, cfg *config.OTELExportConfig, obs []metric.Observation) error {
	res, err := createOTELResource(ctx, cfg.Resource)
	if err != nil {
		return err
	}

	exp, err := createMetricExporter(ctx, cfg)
	if err != nil {
		return err
	}

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	meter := meterProvider.Meter(meterName)

	if err := registerOTELInstruments(meter, obs); err != nil {
		return errors.Join(err, exp.Shutdown(ctx))
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return errors.Join(fmt.Errorf("failed to collect metrics: %w", err), exp.Shutdown(ctx))
	}

	slog.Debug("otel push", "endpoint", cfg.Endpoint, "protocol", cfg.Protocol, "metrics", len(obs))

	if err := exp.Export(ctx, &rm); err != nil {
		return errors.Join(fmt.Errorf("failed to export metrics: %w", err), exp.Shutdown(ctx))
	}

	if err := meterProvider.Shutdown(ctx); err != nil {
		return errors.Join(fmt.Errorf("failed to shut down meter provider: %w", err), exp.Shutdown(ctx))
	}
	if err := exp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down OTLP exporter: %w", err)
	}

	return nil
}

// registerOTELInstruments creates one instrument per observation and a
// callback reporting their values.
func registerOTELInstruments(meter otelmetric.Meter, obs []metric.Observation) error {
	instruments := make([]instrument, 0, len(obs))
	observables := make([]otelmetric.Observable, 0, len(obs))

	for _, o := range obs {
		switch o.Type {
		case metric.MetricTypeCounter:
			counter, err := meter.Int64ObservableCounter(o.Name)
			if err != nil {
				return fmt.Errorf("failed to create counter %q: %w", o.Name, err)
			}
			instruments = append(instruments, instrument{counter: counter, value: o.Cumulative})
			observables = append(observables, counter)

		default:
			gauge, err := meter.Int64ObservableGauge(o.Name)
			if err != nil {
				return fmt.Errorf("failed to create gauge %q: %w", o.Name, err)
			}
			instruments = append(instruments, instrument{gauge: gauge, value: o.Value})
			observables = append(observables, gauge)
		}
	}

	_, err := meter.RegisterCallback(
		func(_ context.Context, observer otelmetric.Observer) error {
			for _, inst := range instruments {
				if inst.counter != nil {
					observer.ObserveInt64(inst.counter, inst.value)
				}
				if inst.gauge != nil {
					observer.ObserveInt64(inst.gauge, inst.value)
				}
			}
			return nil
		},
		observables...,
	)
	if err != nil {
		return fmt.Errorf("failed to register callback: %w", err)
	}

	return nil
}
