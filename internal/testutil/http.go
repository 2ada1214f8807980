package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-chi-calculator/internal/apperr"
)

func ExecuteRequest(req *http.Request, handler http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// NewJSONRequest builds a request with a JSON content type and body.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func CheckResponseCode(t testing.TB, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func DecodeJSONBody(t testing.TB, body io.Reader, dst any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
}

// CheckReport decodes an error report and checks its status and title.
func CheckReport(t testing.TB, rr *httptest.ResponseRecorder, status int, title string) apperr.Report {
	t.Helper()

	CheckResponseCode(t, status, rr.Code)

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var report apperr.Report
	DecodeJSONBody(t, rr.Body, &report)

	if report.StatusCode != status {
		t.Fatalf("expected statusCode %d in body, got %d", status, report.StatusCode)
	}
	if report.Title != title {
		t.Fatalf("expected error %q, got %q", title, report.Title)
	}
	if report.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
	return report
}
