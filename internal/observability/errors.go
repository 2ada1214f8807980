package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/apperr"
	"go-chi-calculator/internal/handlers"
)

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes the classified error report.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, err error, w http.ResponseWriter, r *http.Request) {
	report := apperr.Classify(err, r.URL.Path)

	span.RecordError(err)
	span.SetStatus(codes.Error, report.Title)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", apperr.KindOf(err).String()),
	))

	logFailure(ctx, logger.With(zap.String("operation", opName)), report, err)

	handlers.WriteError(w, report)
}

// WriteFailure reports a failure raised outside a domain handler, such as
// routing errors and recovered panics.
func WriteFailure(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	report := apperr.Classify(err, r.URL.Path)

	logFailure(ctx, LoggerWithTrace(ctx), report, err)

	handlers.WriteError(w, report)
}

func logFailure(ctx context.Context, logger *zap.Logger, report apperr.Report, err error) {
	fields := []zap.Field{
		zap.Int("status", report.StatusCode),
		zap.String("title", report.Title),
		zap.String("path", report.Path),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}

	if report.StatusCode >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
		return
	}

	if len(report.Violations) > 0 {
		fields = append(fields, zap.Any("violations", report.Violations))
	}
	logger.Warn("request rejected", fields...)
}
