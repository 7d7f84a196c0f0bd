package ast

import (
	"errors"
	"fmt"
)

// ErrInvalidOperator is returned when an operator value has no textual form.
// Only an uninitialized or out-of-range enum value can trigger it.
var ErrInvalidOperator = errors.New("invalid operator")

// BinaryOperator enumerates the binary operators. The zero value is not an
// operator.
type BinaryOperator int

// Binary operators, grouped by precedence from loosest to tightest.
const (
	LogicalOr BinaryOperator = iota + 1
	LogicalAnd

	Equal
	NotEqual
	LessEqual
	GreaterEqual
	Less
	Greater

	Add
	Subtract
	BitOr
	BitXor

	Multiply
	Divide
	Remainder
	BitAnd
	BitClear
	ShiftLeft
	ShiftRight

	lastBinaryOperator = ShiftRight
)

// Precedence levels for binary operators. The printer never consults them
// since every operand is parenthesized; the parser does.
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceComparison
	PrecedenceAdditive
	PrecedenceMultiplicative
)

type binaryOperatorDef struct {
	token      string
	precedence int
}

var binaryOperators = [...]binaryOperatorDef{
	LogicalOr:    {"||", PrecedenceOr},
	LogicalAnd:   {"&&", PrecedenceAnd},
	Equal:        {"==", PrecedenceComparison},
	NotEqual:     {"!=", PrecedenceComparison},
	LessEqual:    {"<=", PrecedenceComparison},
	GreaterEqual: {">=", PrecedenceComparison},
	Less:         {"<", PrecedenceComparison},
	Greater:      {">", PrecedenceComparison},
	Add:          {"+", PrecedenceAdditive},
	Subtract:     {"-", PrecedenceAdditive},
	BitOr:        {"|", PrecedenceAdditive},
	BitXor:       {"^", PrecedenceAdditive},
	Multiply:     {"*", PrecedenceMultiplicative},
	Divide:       {"/", PrecedenceMultiplicative},
	Remainder:    {"%", PrecedenceMultiplicative},
	BitAnd:       {"&", PrecedenceMultiplicative},
	BitClear:     {"&^", PrecedenceMultiplicative},
	ShiftLeft:    {"<<", PrecedenceMultiplicative},
	ShiftRight:   {">>", PrecedenceMultiplicative},
}

// Valid reports whether op is one of the declared binary operators.
func (op BinaryOperator) Valid() bool {
	return op >= LogicalOr && op <= lastBinaryOperator
}

// Token returns the canonical source token of op.
func (op BinaryOperator) Token() (string, error) {
	if !op.Valid() {
		return "", fmt.Errorf("%w: binary operator %d", ErrInvalidOperator, int(op))
	}
	return binaryOperators[op].token, nil
}

// Precedence returns the binding strength of op, or PrecedenceNone when op
// is not valid.
func (op BinaryOperator) Precedence() int {
	if !op.Valid() {
		return PrecedenceNone
	}
	return binaryOperators[op].precedence
}

// String returns the token, or BinaryOperator(N) for an invalid ordinal.
func (op BinaryOperator) String() string {
	if tok, err := op.Token(); err == nil {
		return tok
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// BinaryOperators returns every binary operator in declaration order.
func BinaryOperators() []BinaryOperator {
	ops := make([]BinaryOperator, 0, int(lastBinaryOperator))
	for op := LogicalOr; op <= lastBinaryOperator; op++ {
		ops = append(ops, op)
	}
	return ops
}

// LookupBinaryOperator maps a source token back to its operator.
func LookupBinaryOperator(tok string) (BinaryOperator, bool) {
	for op := LogicalOr; op <= lastBinaryOperator; op++ {
		if binaryOperators[op].token == tok {
			return op, true
		}
	}
	return 0, false
}

// UnaryOperator enumerates the prefix operators. The zero value is not an
// operator.
type UnaryOperator int

// Unary operators.
const (
	Negate UnaryOperator = iota + 1
	BitNot
	LogicalNot
	AddressOf

	lastUnaryOperator = AddressOf
)

var unaryTokens = [...]string{
	Negate:     "-",
	BitNot:     "^",
	LogicalNot: "!",
	AddressOf:  "@",
}

// Valid reports whether op is one of the declared unary operators.
func (op UnaryOperator) Valid() bool {
	return op >= Negate && op <= lastUnaryOperator
}

// Token returns the canonical source token of op.
func (op UnaryOperator) Token() (string, error) {
	if !op.Valid() {
		return "", fmt.Errorf("%w: unary operator %d", ErrInvalidOperator, int(op))
	}
	return unaryTokens[op], nil
}

// String returns the token, or UnaryOperator(N) for an invalid ordinal.
func (op UnaryOperator) String() string {
	if tok, err := op.Token(); err == nil {
		return tok
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

// UnaryOperators returns every unary operator in declaration order.
func UnaryOperators() []UnaryOperator {
	ops := make([]UnaryOperator, 0, int(lastUnaryOperator))
	for op := Negate; op <= lastUnaryOperator; op++ {
		ops = append(ops, op)
	}
	return ops
}

// LookupUnaryOperator maps a source token back to its operator.
func LookupUnaryOperator(tok string) (UnaryOperator, bool) {
	for op := Negate; op <= lastUnaryOperator; op++ {
		if unaryTokens[op] == tok {
			return op, true
		}
	}
	return 0, false
}
