package calculator

import (
	"github.com/shopspring/decimal"

	"go-chi-calculator/internal/apperr"
)

// Dispatch runs the engine function for op. Both the HTTP handlers and the
// event processor go through here.
func Dispatch(op Operation, pair OperandPair) (decimal.Decimal, error) {
	switch op {
	case OpSum:
		return Sum(pair)
	case OpSub:
		return Sub(pair)
	case OpMult:
		return Mult(pair)
	case OpDiv:
		return Div(pair)
	default:
		return decimal.Decimal{}, apperr.Newf(apperr.KindUnknownOperation, "unknown operation: %s", op)
	}
}

// DispatchToken parses an untyped operation token and dispatches it.
func DispatchToken(token string, pair OperandPair) (decimal.Decimal, error) {
	op, err := ParseOperation(token)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return Dispatch(op, pair)
}
