package calculator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/apperr"
	"go-chi-calculator/internal/observability"
)

// Processor is the event-driven entry point. It recomputes consumed
// events for the audit log; nothing is returned to a caller and nothing is
// published again.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// Process decodes and recomputes event. Failures are classified and
// returned so the consumer can log them and move on.
func (p *Processor) Process(ctx context.Context, event CalculationEvent) error {
	ctx, span := tracer.Start(ctx, "calculator.event",
		trace.WithAttributes(
			attribute.String("calculator.operation", event.Operation),
			attribute.String("calculator.operand.first", event.FirstOperand),
			attribute.String("calculator.operand.second", event.SecondOperand),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx)

	op, pair, err := Decode(event)
	if err != nil {
		return p.fail(ctx, span, logger, operationLabel(event.Operation), event, err)
	}

	start := time.Now()
	result, err := Dispatch(op, pair)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		return p.fail(ctx, span, logger, op.String(), event, err)
	}

	plain := PlainString(result)
	recordSuccess(ctx, entryEvent, op.String(), elapsed, result.InexactFloat64())

	span.SetAttributes(attribute.String("calculator.result", plain))
	span.SetStatus(codes.Ok, "")

	logger.Info(fmt.Sprintf("Processed %s(%s, %s) = %s", op, event.FirstOperand, event.SecondOperand, plain),
		zap.String("operation", op.String()),
		zap.String("result", plain),
		zap.String("published_result", event.Result),
		zap.Float64("duration_ms", elapsed),
	)

	return nil
}

func (p *Processor) fail(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, event CalculationEvent, err error) error {
	kind := apperr.KindOf(err)

	span.RecordError(err)
	span.SetStatus(codes.Error, kind.String())

	recordFailure(ctx, entryEvent, opName, err)

	logger.Warn("calculation event rejected",
		zap.String("operation", event.Operation),
		zap.String("first", event.FirstOperand),
		zap.String("second", event.SecondOperand),
		zap.String("kind", kind.String()),
		zap.Error(err),
	)

	return fmt.Errorf("process %s event: %w", event.Operation, err)
}

// operationLabel is the metric label for a rejected event: its token when
// the token names an operation, "unknown" otherwise.
func operationLabel(token string) string {
	if op, err := ParseOperation(token); err == nil {
		return op.String()
	}
	return "unknown"
}
