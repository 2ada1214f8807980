package calculator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"go-chi-calculator/internal/apperr"
)

// operationBudget bounds a single engine call on any in-range operands.
const operationBudget = 2 * time.Second

func dec(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return d
}

func pair(t testing.TB, a, b string) OperandPair {
	t.Helper()
	return PairOf(dec(t, a), dec(t, b))
}

func TestEngineResults(t *testing.T) {
	tests := []struct {
		name string
		fn   func(OperandPair) (decimal.Decimal, error)
		a, b string
		want string
	}{
		{"sum keeps scale", Sum, "10.5", "10.5", "21.0"},
		{"sum negatives", Sum, "-1.2", "3.2", "2.0"},
		{"sub", Sub, "5", "7.25", "-2.25"},
		{"mult scale adds up", Mult, "1.5", "2.0", "3.00"},
		{"mult rounds to 34 digits", Mult, "1234567890123456789", "9876543210987654321", "12193263113702179522374638011112640000"},
		{"div exact", Div, "10", "4", "2.5"},
		{"div exact integer", Div, "4", "2", "2"},
		{"div keeps preferred scale", Div, "7.50", "2.5", "3.0"},
		{"div stops at preferred scale", Div, "1.00", "4", "0.25"},
		{"div larger divisor scale", Div, "6", "2.0", "3"},
		{"div zero dividend", Div, "0", "5", "0"},
		{"div one third", Div, "1", "3", "0.3333333333333333333333333333333333"},
		{"div two thirds rounds up", Div, "2", "3", "0.6666666666666666666666666666666667"},
		{"div negative third", Div, "-1", "3", "-0.3333333333333333333333333333333333"},
		{"div one seventh", Div, "1", "7", "0.1428571428571428571428571428571429"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(pair(t, tc.a, tc.b))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s := PlainString(got); s != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, s)
			}
		})
	}
}

func TestRoundingIsHalfEven(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"1234567890123456789012345678901234", "0.5", "1234567890123456789012345678901234"},
		{"1234567890123456789012345678901235", "0.5", "1234567890123456789012345678901236"},
		{"-1234567890123456789012345678901235", "-0.5", "-1234567890123456789012345678901236"},
		{"9999999999999999999999999999999999", "0.5", "10000000000000000000000000000000000"},
	}

	for _, tc := range tests {
		t.Run(tc.a, func(t *testing.T) {
			got, err := Sum(pair(t, tc.a, tc.b))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s := PlainString(got); s != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, s)
			}
			if got.NumDigits() > Precision {
				t.Fatalf("expected at most %d digits, got %d", Precision, got.NumDigits())
			}
		})
	}
}

func TestSumAndMultAreCommutative(t *testing.T) {
	values := []string{"0", "1", "-1", "10.5", "0.001", "-3.75", "123456789.987654321", "1e10", "99999999999999999999999999999999999.5"}

	for _, a := range values {
		for _, b := range values {
			ab, ba := pair(t, a, b), pair(t, b, a)

			s1, _ := Sum(ab)
			s2, _ := Sum(ba)
			if !s1.Equal(s2) {
				t.Fatalf("sum(%s, %s) = %s but sum(%s, %s) = %s", a, b, s1, b, a, s2)
			}

			m1, _ := Mult(ab)
			m2, _ := Mult(ba)
			if !m1.Equal(m2) {
				t.Fatalf("mult(%s, %s) = %s but mult(%s, %s) = %s", a, b, m1, b, a, m2)
			}
		}
	}
}

func TestSubOfEqualOperandsIsZero(t *testing.T) {
	for _, a := range []string{"0", "10.5", "-7", "1e-20", "123456789012345678901234567890.123456"} {
		got, err := Sub(pair(t, a, a))
		if err != nil {
			t.Fatalf("sub(%s, %s): unexpected error: %v", a, a, err)
		}
		if !got.IsZero() {
			t.Fatalf("sub(%s, %s) = %s, expected zero", a, a, got)
		}
	}

	got, _ := Sub(pair(t, "10.5", "10.5"))
	if s := PlainString(got); s != "0.0" {
		t.Fatalf("expected 0.0, got %s", s)
	}
}

func TestDivByZero(t *testing.T) {
	for _, a := range []string{"0", "4", "-3.2", "0.000"} {
		_, err := Div(pair(t, a, "0"))
		if !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("div(%s, 0): expected ErrDivisionByZero, got %v", a, err)
		}
	}

	_, err := Div(pair(t, "1", "0.00"))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero for a scaled zero, got %v", err)
	}
}

func TestEngineRejectsInvalidPair(t *testing.T) {
	for _, fn := range []func(OperandPair) (decimal.Decimal, error){Sum, Sub, Mult, Div} {
		if _, err := fn(OperandPair{}); !errors.Is(err, ErrInvalidOperand) {
			t.Fatalf("expected ErrInvalidOperand, got %v", err)
		}
	}
}

func TestNewOperandPair(t *testing.T) {
	b := decimal.NewNullDecimal(dec(t, "2"))

	if _, err := NewOperandPair(decimal.NullDecimal{}, b); !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("expected ErrInvalidOperand for missing first, got %v", err)
	}
	if _, err := NewOperandPair(b, decimal.NullDecimal{}); !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("expected ErrInvalidOperand for missing second, got %v", err)
	}

	p, err := NewOperandPair(decimal.NewNullDecimal(dec(t, "1.5")), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Valid() || PlainString(p.First()) != "1.5" || PlainString(p.Second()) != "2" {
		t.Fatalf("unexpected pair %s, %s", p.First(), p.Second())
	}
}

func TestPlainStringNeverUsesExponent(t *testing.T) {
	tests := map[string]string{
		"1E+3":    "1000",
		"1.5e-7":  "0.00000015",
		"-2.50":   "-2.50",
		"0":       "0",
		"0.000":   "0.000",
		"12345e2": "1234500",
	}

	for in, want := range tests {
		if got := PlainString(dec(t, in)); got != want {
			t.Fatalf("PlainString(%s): expected %s, got %s", in, want, got)
		}
	}
}

func TestEngineExtremeExponents(t *testing.T) {
	tests := []struct {
		name string
		fn   func(OperandPair) (decimal.Decimal, error)
		a, b string
		want string
	}{
		{"sum with far smaller addend", Sum, "1E+6144", "1", "1E+6144"},
		{"sub with far smaller subtrahend", Sub, "1E+6144", "1", "1E+6144"},
		{"sum with far larger addend", Sum, "1", "1E+6144", "1E+6144"},
		{"sum across the whole range", Sum, "1E+6144", "1E-6143", "1E+6144"},
		{"sum with tiny addend", Sum, "1", "1E-6143", "1"},
		{"sub tiny rounds up to one", Sub, "1", "1E-6143", "1"},
		{"sum with low scaled zero", Sum, "0E-6143", "1E+6144", "1E+6144"},
		{"mult largest exponents", Mult, "1E+6144", "1E+6144", "1E+12288"},
		{"div smallest by largest", Div, "1E-6143", "1E+6144", "1E-12287"},
		{"div inexact far apart", Div, "1", "3E+6144", "3.333333333333333333333333333333333E-6145"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := pair(t, tc.a, tc.b)

			start := time.Now()
			got, err := tc.fn(p)
			elapsed := time.Since(start)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if elapsed > operationBudget {
				t.Fatalf("expected result within %s, took %s", operationBudget, elapsed)
			}
			if !got.Equal(dec(t, tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if got.NumDigits() > Precision {
				t.Fatalf("expected at most %d digits, got %d", Precision, got.NumDigits())
			}
		})
	}
}

func TestEngineKeepsPrecisionAcrossExponentGap(t *testing.T) {
	got, err := Sum(pair(t, "1", "1E-6143"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "1." + strings.Repeat("0", Precision-1); PlainString(got) != want {
		t.Fatalf("expected %s, got %s", want, PlainString(got))
	}

	got, err = Sub(pair(t, "1E+40", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "1" + strings.Repeat("0", 40); PlainString(got) != want {
		t.Fatalf("expected %s, got %s", want, PlainString(got))
	}
	if got.Exponent() != 7 {
		t.Fatalf("expected exponent 7, got %d", got.Exponent())
	}
}

func TestEngineRejectsOutOfRangeOperands(t *testing.T) {
	pairs := [][2]string{
		{"1E+6145", "1"},
		{"1", "1E-6144"},
		{"12345E+6141", "2"},
		{"1E-2000000000", "1E+2000000000"},
		{"1E+2000000000", "1E+2000000000"},
		{"0E-2000000000", "1"},
	}
	engine := map[string]func(OperandPair) (decimal.Decimal, error){
		"sum": Sum, "sub": Sub, "mult": Mult, "div": Div,
	}

	for _, operands := range pairs {
		for name, fn := range engine {
			t.Run(name+"("+operands[0]+", "+operands[1]+")", func(t *testing.T) {
				p := pair(t, operands[0], operands[1])

				start := time.Now()
				_, err := fn(p)
				elapsed := time.Since(start)

				if !errors.Is(err, ErrOperandOutOfRange) {
					t.Fatalf("expected ErrOperandOutOfRange, got %v", err)
				}
				if kind := apperr.KindOf(err); kind != apperr.KindInvalidOperand {
					t.Fatalf("expected invalid_operand kind, got %s", kind)
				}
				if elapsed > operationBudget {
					t.Fatalf("expected rejection within %s, took %s", operationBudget, elapsed)
				}
			})
		}
	}
}

func TestInRangeBoundaries(t *testing.T) {
	tests := map[string]bool{
		"1E+6144":     true,
		"9.99E+6144":  true,
		"1E+6145":     false,
		"1E-6143":     true,
		"1E-6144":     false,
		"1234E+6141":  true,
		"12345E+6141": false,
		"0":           true,
	}

	for in, want := range tests {
		if got := inRange(dec(t, in)); got != want {
			t.Fatalf("inRange(%s): expected %t, got %t", in, want, got)
		}
	}
}
