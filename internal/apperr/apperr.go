package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Every kind maps to exactly one entry of the
// external error report table, see Classify.
type Kind int

const (
	KindUnclassified Kind = iota
	KindStructuralValidation
	KindMalformedPayload
	KindTypeMismatch
	KindMissingParameter
	KindInvalidOperand
	KindDivisionByZero
	KindUnknownOperation
	KindMalformedOperand
	KindNotFound
	KindMethodNotAllowed
	KindUnsupportedMediaType
)

var kindNames = map[Kind]string{
	KindUnclassified:         "unclassified",
	KindStructuralValidation: "structural_validation",
	KindMalformedPayload:     "malformed_payload",
	KindTypeMismatch:         "type_mismatch",
	KindMissingParameter:     "missing_parameter",
	KindInvalidOperand:       "invalid_operand",
	KindDivisionByZero:       "division_by_zero",
	KindUnknownOperation:     "unknown_operation",
	KindMalformedOperand:     "malformed_operand",
	KindNotFound:             "not_found",
	KindMethodNotAllowed:     "method_not_allowed",
	KindUnsupportedMediaType: "unsupported_media_type",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Violation names a request field and the rule it broke.
type Violation struct {
	Field   string `json:"fieldName"`
	Message string `json:"message"`
}

// Error is a classified failure.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Err        error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, keeping it as the cause.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Validation builds a structural validation failure from field violations.
func Validation(msg string, violations ...Violation) *Error {
	return &Error{Kind: KindStructuralValidation, Message: msg, Violations: violations}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so package sentinels such as
// calculator.ErrDivisionByZero match errors built with a more specific
// message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}
