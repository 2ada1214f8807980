package calculator

import (
	"github.com/shopspring/decimal"
)

// OperandPair holds the two operands of a binary operation. The zero value
// is not a valid pair; build one with NewOperandPair or PairOf.
type OperandPair struct {
	first  decimal.Decimal
	second decimal.Decimal
	valid  bool
}

// NewOperandPair fails with ErrInvalidOperand when either operand is absent.
func NewOperandPair(first, second decimal.NullDecimal) (OperandPair, error) {
	if !first.Valid || !second.Valid {
		return OperandPair{}, ErrInvalidOperand
	}
	return PairOf(first.Decimal, second.Decimal), nil
}

// PairOf builds a pair from two present operands.
func PairOf(first, second decimal.Decimal) OperandPair {
	return OperandPair{first: first, second: second, valid: true}
}

func (p OperandPair) First() decimal.Decimal  { return p.first }
func (p OperandPair) Second() decimal.Decimal { return p.second }

// Valid reports whether both operands are present.
func (p OperandPair) Valid() bool { return p.valid }

// Equal compares operands by numeric value.
func (p OperandPair) Equal(other OperandPair) bool {
	return p.valid == other.valid &&
		p.first.Equal(other.first) &&
		p.second.Equal(other.second)
}
