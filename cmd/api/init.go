package main

import (
	"context"
	"errors"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// telemetry holds the providers set up at startup.
type telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	shutdowns      []func(context.Context) error
}

// initTelemetry initialises tracing, metrics, optional OTLP log export and
// the calculator's metric instruments. Add new domain InitMetrics calls
// here as the project grows.
func initTelemetry(ctx context.Context, cfg config.Config) (*telemetry, error) {
	t := &telemetry{}

	res, err := observability.NewResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	tp, err := observability.InitTracing(ctx, res)
	if err != nil {
		return nil, err
	}
	t.tracerProvider = tp
	t.shutdowns = append(t.shutdowns, tp.Shutdown)

	metricShutdown, err := observability.InitMetrics(ctx, res)
	if err != nil {
		return nil, errors.Join(err, t.shutdown(ctx))
	}
	t.shutdowns = append(t.shutdowns, metricShutdown)

	if cfg.OTLPLogs {
		logShutdown, err := observability.InitLogging(ctx, cfg.ServiceName, res)
		if err != nil {
			return nil, errors.Join(err, t.shutdown(ctx))
		}
		t.shutdowns = append(t.shutdowns, logShutdown)
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, t.shutdown(ctx))
	}

	return t, nil
}

// shutdown flushes providers in reverse order of creation.
func (t *telemetry) shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		errs = append(errs, t.shutdowns[i](ctx))
	}
	return errors.Join(errs...)
}
