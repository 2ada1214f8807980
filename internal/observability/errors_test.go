package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-chi-calculator/internal/apperr"
	"go-chi-calculator/internal/testutil"
)

func TestRecordErrorWritesClassifiedReport(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	span := trace.SpanFromContext(ctx)
	logger := zap.NewNop()

	counter, err := otel.Meter("test").Int64Counter("test.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/calculator/div", nil)
	w := httptest.NewRecorder()

	RecordError(
		ctx,
		span,
		logger,
		counter,
		"DIV",
		apperr.New(apperr.KindDivisionByZero, "division by zero"),
		w,
		r,
	)

	report := testutil.CheckReport(t, w, http.StatusBadRequest, "Bad Request")

	if report.Message != "division by zero" {
		t.Fatalf("expected message %q, got %q", "division by zero", report.Message)
	}
	if report.Path != "/api/v1/calculator/div" {
		t.Fatalf("expected path %q, got %q", "/api/v1/calculator/div", report.Path)
	}
}

func TestRecordErrorOmitsRequestIDFromBody(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	counter, err := otel.Meter("test").Int64Counter("test.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/calculator/sum", nil)
	w := httptest.NewRecorder()

	RecordError(ctx, trace.SpanFromContext(ctx), zap.NewNop(), counter, "SUM", apperr.New(apperr.KindMalformedPayload, "bad json"), w, r)

	var body map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if _, ok := body["request_id"]; ok {
		t.Fatal("did not expect request_id field in JSON body")
	}
	if _, ok := body["violationList"]; ok {
		t.Fatal("did not expect violationList for a malformed payload")
	}
}

func TestWriteFailureHidesUnclassifiedCause(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = oldLogger })

	r := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()

	WriteFailure(w, r, errors.New("database password is hunter2"))

	report := testutil.CheckReport(t, w, http.StatusInternalServerError, "Internal Server Error")
	if report.Message != "Unexpected error" {
		t.Fatalf("expected generic message, got %q", report.Message)
	}

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "database password is hunter2" {
		t.Fatalf("expected cause in the log, got %#v", got)
	}
}
