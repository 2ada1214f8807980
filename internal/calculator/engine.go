package calculator

import (
	"github.com/shopspring/decimal"
)

// Sum returns first + second.
func Sum(pair OperandPair) (decimal.Decimal, error) {
	if err := validate(pair); err != nil {
		return decimal.Decimal{}, err
	}
	return add(pair.first, pair.second), nil
}

// Sub returns first - second.
func Sub(pair OperandPair) (decimal.Decimal, error) {
	if err := validate(pair); err != nil {
		return decimal.Decimal{}, err
	}
	return add(pair.first, pair.second.Neg()), nil
}

// Mult returns first * second.
func Mult(pair OperandPair) (decimal.Decimal, error) {
	if err := validate(pair); err != nil {
		return decimal.Decimal{}, err
	}
	return roundToPrecision(pair.first.Mul(pair.second)), nil
}

// Div returns first / second, failing with ErrDivisionByZero when second
// is zero.
func Div(pair OperandPair) (decimal.Decimal, error) {
	if err := validate(pair); err != nil {
		return decimal.Decimal{}, err
	}
	if pair.second.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	return quotient(pair.first, pair.second), nil
}

func validate(pair OperandPair) error {
	if !pair.valid {
		return ErrInvalidOperand
	}
	if !inRange(pair.first) || !inRange(pair.second) {
		return ErrOperandOutOfRange
	}
	return nil
}
