package calculator

import (
	"fmt"

	"go-chi-calculator/internal/apperr"
)

// Operation is one of the four supported binary operations.
type Operation int

const (
	OpSum Operation = iota + 1
	OpSub
	OpMult
	OpDiv
)

var operationTokens = map[Operation]string{
	OpSum:  "SUM",
	OpSub:  "SUB",
	OpMult: "MULT",
	OpDiv:  "DIV",
}

var operationRoutes = map[Operation]string{
	OpSum:  "sum",
	OpSub:  "sub",
	OpMult: "mult",
	OpDiv:  "div",
}

// Operations lists every operation in route order.
func Operations() []Operation {
	return []Operation{OpSum, OpSub, OpMult, OpDiv}
}

// String returns the wire token, e.g. "SUM".
func (o Operation) String() string {
	if token, ok := operationTokens[o]; ok {
		return token
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Route returns the URL path segment for the operation.
func (o Operation) Route() string {
	return operationRoutes[o]
}

// ParseOperation maps a wire token to its Operation. Matching is exact and
// case-sensitive.
func ParseOperation(token string) (Operation, error) {
	for op, t := range operationTokens {
		if t == token {
			return op, nil
		}
	}
	return 0, apperr.Newf(apperr.KindUnknownOperation, "unknown operation: %s", token)
}
