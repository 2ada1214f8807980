package calculator

import "go-chi-calculator/internal/apperr"

// Sentinels for the calculator failure kinds. errors.Is matches any
// *apperr.Error of the same kind, whatever its message.
var (
	ErrInvalidOperand   = apperr.New(apperr.KindInvalidOperand, "operands must not be null")
	ErrDivisionByZero   = apperr.New(apperr.KindDivisionByZero, "division by zero")
	ErrUnknownOperation = apperr.New(apperr.KindUnknownOperation, "unknown operation")
	ErrMalformedOperand = apperr.New(apperr.KindMalformedOperand, "operand is not a valid decimal")
)

// ErrOperandOutOfRange is an InvalidOperand failure, so it also matches
// ErrInvalidOperand.
var ErrOperandOutOfRange = apperr.Newf(apperr.KindInvalidOperand,
	"operand exponent must be between %d and %d", MinExponent, MaxExponent)
