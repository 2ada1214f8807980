package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Precision is the number of significant digits kept by every operation
// (the IEEE 754 decimal128 context). Results that need more digits are
// rounded half-even.
const Precision = 34

// Operands must have an adjusted exponent (the power of ten of their most
// significant digit) inside the decimal128 range. Bounding the exponents
// bounds the work of every operation.
const (
	MinExponent = -6143
	MaxExponent = 6144
)

// adjusted returns the exponent of the most significant digit of d.
func adjusted(d decimal.Decimal) int64 {
	return int64(d.NumDigits()) + int64(d.Exponent()) - 1
}

// inRange reports whether d can be used as an operand.
func inRange(d decimal.Decimal) bool {
	adj := adjusted(d)
	return adj >= MinExponent && adj <= MaxExponent
}

// roundToPrecision rounds d half-even to at most Precision significant
// digits. Values that already fit are returned unchanged, scale included.
func roundToPrecision(d decimal.Decimal) decimal.Decimal {
	digits := d.NumDigits()
	if digits <= Precision {
		return d
	}

	places := -int64(d.Exponent()) - int64(digits-Precision)
	rounded := d.RoundBank(int32(places))

	// 99..9 rounds up to 100..0, one digit too many; drop the trailing zero.
	if rounded.NumDigits() > Precision {
		rounded = rounded.RoundBank(int32(places - 1))
	}
	return rounded
}

// add returns a+b rounded to Precision digits. An operand lying wholly
// below the rounding digit of the other is replaced by a single sticky
// digit, so the exact sum never grows past Precision+3 digits from an
// exponent gap.
func add(a, b decimal.Decimal) decimal.Decimal {
	switch {
	case a.IsZero() && b.IsZero():
		return decimal.New(0, min(a.Exponent(), b.Exponent()))
	case a.IsZero():
		return addZero(b, a.Exponent())
	case b.IsZero():
		return addZero(a, b.Exponent())
	}

	hi, lo := a, b
	if adjusted(lo) > adjusted(hi) {
		hi, lo = lo, hi
	}

	floor := min(int64(hi.Exponent()), adjusted(hi)+1-Precision)
	if adjusted(lo) < floor-2 {
		lo = decimal.New(int64(lo.Sign()), int32(floor-3))
	}

	return roundToPrecision(hi.Add(lo))
}

// addZero returns d plus a zero of exponent zeroExp: d extended with
// trailing zeros down to zeroExp, but never past Precision digits.
func addZero(d decimal.Decimal, zeroExp int32) decimal.Decimal {
	target := min(int64(zeroExp), int64(d.Exponent()))
	target = max(target, adjusted(d)+1-Precision)

	if target >= int64(d.Exponent()) {
		return roundToPrecision(d)
	}
	return d.Add(decimal.New(0, int32(target)))
}

// quotient divides a by a non-zero b. Inexact quotients carry Precision
// significant digits. Exact quotients are reduced toward the preferred
// exponent exp(a)-exp(b) by dropping trailing zeros. Both operands must be
// in range.
func quotient(a, b decimal.Decimal) decimal.Decimal {
	preferred := int64(a.Exponent()) - int64(b.Exponent())
	if a.IsZero() {
		return decimal.New(0, int32(preferred))
	}

	// Enough places for at least Precision+2 significant digits.
	places := adjusted(b) - adjusted(a) + Precision + 2
	places = max(places, -preferred)

	q, r := a.QuoRem(b, int32(places))
	if !r.IsZero() {
		// q is truncated toward zero; a sticky digit past the last place
		// keeps a truncated tail from looking like an exact half.
		sticky := decimal.New(int64(a.Sign()*b.Sign()), int32(-places-1))
		return roundToPrecision(q.Add(sticky))
	}

	return stripTrailingZeros(roundToPrecision(q), preferred)
}

// stripTrailingZeros removes trailing zeros from the coefficient while the
// exponent stays at or below limit.
func stripTrailingZeros(d decimal.Decimal, limit int64) decimal.Decimal {
	coef := d.Coefficient()
	exp := int64(d.Exponent())
	ten := big.NewInt(10)

	for exp < limit && coef.Sign() != 0 {
		q, m := new(big.Int).QuoRem(coef, ten, new(big.Int))
		if m.Sign() != 0 {
			break
		}
		coef = q
		exp++
	}
	return decimal.NewFromBigInt(coef, int32(exp))
}

// PlainString renders d without exponent notation, keeping its scale:
// 21.0 stays "21.0", 1E+3 becomes "1000".
func PlainString(d decimal.Decimal) string {
	if d.Exponent() >= 0 {
		return d.StringFixed(0)
	}
	return d.StringFixed(-d.Exponent())
}
