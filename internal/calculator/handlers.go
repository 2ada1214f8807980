package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/apperr"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const maxBodyBytes = 1 << 20

// Handler serves the synchronous calculator endpoints and hands every
// result to the publisher.
type Handler struct {
	publisher Publisher
}

// NewHandler returns a Handler publishing to p. A nil p discards events.
func NewHandler(p Publisher) *Handler {
	if p == nil {
		p = discardPublisher{}
	}
	return &Handler{publisher: p}
}

// Calculate handles POST {base}/{sum,sub,mult,div}.
func (h *Handler) Calculate(op Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span, logger := startSpan(r, op.String())
		defer span.End()

		pair, err := decodeOperands(w, r)
		if err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, op.String(), err, w, r)
			return
		}

		h.compute(ctx, span, logger, w, r, op, pair)
	}
}

// Evaluate handles GET {base}/evaluate?operation=SUM&firstNumber=1&secondNumber=2,
// dispatching an untyped operation token.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "evaluate")
	defer span.End()

	q := r.URL.Query()

	token, err := requiredParam(q, "operation")
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err, w, r)
		return
	}

	first, err := decimalParam(q, "firstNumber")
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err, w, r)
		return
	}

	second, err := decimalParam(q, "secondNumber")
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err, w, r)
		return
	}

	op, err := ParseOperation(token)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err, w, r)
		return
	}

	h.compute(ctx, span, logger, w, r, op, PairOf(first, second))
}

func startSpan(r *http.Request, name string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+name,
		trace.WithAttributes(
			attribute.String("calculator.operation", name),
			attribute.String("request.id", requestID),
		),
	)

	return ctx, span, observability.LoggerWithTrace(ctx)
}

// compute dispatches op, writes the response and hands the event to the
// publisher.
func (h *Handler) compute(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, r *http.Request, op Operation, pair OperandPair) {
	opName := op.String()
	first, second := PlainString(pair.First()), PlainString(pair.Second())

	span.SetAttributes(
		attribute.String("calculator.operation", opName),
		attribute.String("calculator.operand.first", first),
		attribute.String("calculator.operand.second", second),
	)

	start := time.Now()
	result, err := Dispatch(op, pair)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err, w, r)
		return
	}

	plain := PlainString(result)
	recordSuccess(ctx, entryHTTP, opName, elapsed, result.InexactFloat64())

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", plain),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", plain))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("first", first),
		zap.String("second", second),
		zap.String("result", plain),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	h.publisher.Publish(ctx, Encode(op, pair, result))

	handlers.WriteJSON(w, http.StatusOK, NewCalcResponse(result))
}

func decodeOperands(w http.ResponseWriter, r *http.Request) (OperandPair, error) {
	contentType := r.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType != "application/json" {
		return OperandPair{}, apperr.Newf(apperr.KindUnsupportedMediaType, "Content-Type '%s' is not supported", contentType)
	}

	var req CalcRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return OperandPair{}, apperr.Wrap(apperr.KindMalformedPayload, err, "decode request body")
	}

	if err := req.Validate(); err != nil {
		return OperandPair{}, err
	}

	return NewOperandPair(req.FirstNumber, req.SecondNumber)
}

func requiredParam(q url.Values, name string) (string, error) {
	value := q.Get(name)
	if value == "" {
		return "", apperr.Newf(apperr.KindMissingParameter, "Missing required parameter '%s'", name)
	}
	return value, nil
}

func decimalParam(q url.Values, name string) (decimal.Decimal, error) {
	value, err := requiredParam(q, name)
	if err != nil {
		return decimal.Decimal{}, err
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, apperr.Wrap(apperr.KindTypeMismatch, err, fmt.Sprintf("Parameter '%s' has invalid value '%s'", name, value))
	}
	if !inRange(d) {
		return decimal.Decimal{}, apperr.Wrap(apperr.KindTypeMismatch, ErrOperandOutOfRange, fmt.Sprintf("Parameter '%s' has invalid value '%s'", name, value))
	}
	return d, nil
}
