package apperr

import (
	"errors"
	"net/http"
	"time"
)

// Report is the JSON body returned for every failed request.
type Report struct {
	Timestamp  time.Time   `json:"timeStamp"`
	StatusCode int         `json:"statusCode"`
	Title      string      `json:"error"`
	Message    string      `json:"message"`
	Path       string      `json:"path"`
	Violations []Violation `json:"violationList,omitempty"`
}

type entry struct {
	status int
	title  string
	// message is used when the error carries none, or always when detail
	// is false.
	message string
	detail  bool
}

var table = map[Kind]entry{
	KindStructuralValidation: {http.StatusBadRequest, "Validation Error", "Request body validation failed", true},
	KindMalformedPayload:     {http.StatusBadRequest, "Malformed JSON", "Request body is invalid or has wrong types", false},
	KindTypeMismatch:         {http.StatusBadRequest, "Type Mismatch", "Parameter has invalid value", true},
	KindMissingParameter:     {http.StatusBadRequest, "Missing Parameter", "Missing required parameter", true},
	KindInvalidOperand:       {http.StatusBadRequest, "Bad Request", "operands must not be null", true},
	KindDivisionByZero:       {http.StatusBadRequest, "Bad Request", "division by zero", true},
	KindUnknownOperation:     {http.StatusBadRequest, "Bad Request", "unknown operation", true},
	KindMalformedOperand:     {http.StatusBadRequest, "Bad Request", "operand is not a valid decimal", true},
	KindNotFound:             {http.StatusNotFound, "Not Found", "Endpoint not found", false},
	KindMethodNotAllowed:     {http.StatusMethodNotAllowed, "Method Not Allowed", "Method is not supported for this request", true},
	KindUnsupportedMediaType: {http.StatusUnsupportedMediaType, "Unsupported Media Type", "Content-Type not supported", false},
	KindUnclassified:         {http.StatusInternalServerError, "Internal Server Error", "Unexpected error", false},
}

// Status returns the HTTP status code for kind.
func Status(kind Kind) int {
	return lookup(kind).status
}

// Title returns the short report title for kind.
func Title(kind Kind) string {
	return lookup(kind).title
}

func lookup(kind Kind) entry {
	if e, ok := table[kind]; ok {
		return e
	}
	return table[KindUnclassified]
}

// Classify turns err into the report sent for a request to path. Errors
// that are not *Error become a 500 with a generic message; their text
// never reaches the report.
func Classify(err error, path string) Report {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = &Error{Kind: KindUnclassified}
	}

	e := lookup(ae.Kind)

	msg := e.message
	if e.detail && ae.Message != "" {
		msg = ae.Message
	}

	report := Report{
		Timestamp:  time.Now().UTC(),
		StatusCode: e.status,
		Title:      e.title,
		Message:    msg,
		Path:       path,
	}

	if ae.Kind == KindStructuralValidation && len(ae.Violations) > 0 {
		report.Violations = append([]Violation(nil), ae.Violations...)
	}

	return report
}
