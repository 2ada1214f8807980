package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"go-chi-calculator/internal/apperr"
)

// CalcRequest is the JSON body for POST /{sum,sub,mult,div}. Operands may be
// JSON numbers or decimal strings.
type CalcRequest struct {
	FirstNumber  decimal.NullDecimal `json:"firstNumber"`
	SecondNumber decimal.NullDecimal `json:"secondNumber"`
}

var outOfRangeMessage = fmt.Sprintf("exponent must be between %d and %d", MinExponent, MaxExponent)

// Validate reports every missing or out-of-range operand as a field
// violation.
func (r CalcRequest) Validate() error {
	var violations []apperr.Violation

	violations = appendOperandViolation(violations, "firstNumber", r.FirstNumber)
	violations = appendOperandViolation(violations, "secondNumber", r.SecondNumber)

	if len(violations) > 0 {
		return apperr.Validation("Request body validation failed", violations...)
	}
	return nil
}

func appendOperandViolation(violations []apperr.Violation, field string, d decimal.NullDecimal) []apperr.Violation {
	switch {
	case !d.Valid:
		return append(violations, apperr.Violation{Field: field, Message: "must not be null"})
	case !inRange(d.Decimal):
		return append(violations, apperr.Violation{Field: field, Message: outOfRangeMessage})
	}
	return violations
}

// CalcResponse is the JSON response for all calculator endpoints. Result is
// a bare JSON number in plain decimal form, e.g. {"result":21.0}.
type CalcResponse struct {
	Result json.Number `json:"result"`
}

func NewCalcResponse(result decimal.Decimal) CalcResponse {
	return CalcResponse{Result: json.Number(PlainString(result))}
}

// Publisher receives an event for every successful synchronous computation.
// Publish must not block and its outcome never affects the caller.
type Publisher interface {
	Publish(ctx context.Context, event CalculationEvent)
}

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, CalculationEvent) {}
