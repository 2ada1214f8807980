package calculator

import (
	"github.com/shopspring/decimal"

	"go-chi-calculator/internal/apperr"
)

// CalculationEvent records one completed computation. Values are plain
// decimal strings so the record is byte-exact on any transport.
type CalculationEvent struct {
	Operation     string `json:"operation"`
	FirstOperand  string `json:"firstOperand"`
	SecondOperand string `json:"secondOperand"`
	Result        string `json:"result"`
}

// Encode builds the event for a successful computation.
func Encode(op Operation, pair OperandPair, result decimal.Decimal) CalculationEvent {
	return CalculationEvent{
		Operation:     op.String(),
		FirstOperand:  PlainString(pair.first),
		SecondOperand: PlainString(pair.second),
		Result:        PlainString(result),
	}
}

// Decode parses the operation and operands of an event. The result field
// is not read.
func Decode(event CalculationEvent) (Operation, OperandPair, error) {
	op, err := ParseOperation(event.Operation)
	if err != nil {
		return 0, OperandPair{}, err
	}

	first, err := parseOperand("firstOperand", event.FirstOperand)
	if err != nil {
		return 0, OperandPair{}, err
	}
	second, err := parseOperand("secondOperand", event.SecondOperand)
	if err != nil {
		return 0, OperandPair{}, err
	}

	return op, PairOf(first, second), nil
}

func parseOperand(field, text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, apperr.Wrap(apperr.KindMalformedOperand, err, field+" is not a valid decimal: "+text)
	}
	if !inRange(d) {
		return decimal.Decimal{}, apperr.Wrap(apperr.KindMalformedOperand, ErrOperandOutOfRange, field+" is out of range: "+text)
	}
	return d, nil
}
