package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryOperatorTable(t *testing.T) {
	ops := BinaryOperators()
	require.Len(t, ops, 19)

	seen := make(map[string]BinaryOperator)
	for _, op := range ops {
		tok, err := op.Token()
		require.NoError(t, err, "operator %d", int(op))
		assert.NotEmpty(t, tok)
		if prev, dup := seen[tok]; dup {
			t.Errorf("token %q shared by %d and %d", tok, int(prev), int(op))
		}
		seen[tok] = op

		back, ok := LookupBinaryOperator(tok)
		assert.True(t, ok)
		assert.Equal(t, op, back)
		assert.NotEqual(t, PrecedenceNone, op.Precedence())
	}
}

func TestUnaryOperatorTable(t *testing.T) {
	ops := UnaryOperators()
	require.Len(t, ops, 4)

	seen := make(map[string]bool)
	for _, op := range ops {
		tok, err := op.Token()
		require.NoError(t, err)
		assert.NotEmpty(t, tok)
		assert.False(t, seen[tok], "duplicate token %q", tok)
		seen[tok] = true

		back, ok := LookupUnaryOperator(tok)
		assert.True(t, ok)
		assert.Equal(t, op, back)
	}
}

func TestOperatorTokens(t *testing.T) {
	binary := map[BinaryOperator]string{
		LogicalOr: "||", LogicalAnd: "&&",
		Equal: "==", NotEqual: "!=", LessEqual: "<=", GreaterEqual: ">=", Less: "<", Greater: ">",
		Add: "+", Subtract: "-", BitOr: "|", BitXor: "^",
		Multiply: "*", Divide: "/", Remainder: "%", BitAnd: "&", BitClear: "&^", ShiftLeft: "<<", ShiftRight: ">>",
	}
	for op, want := range binary {
		assert.Equal(t, want, op.String())
	}

	unary := map[UnaryOperator]string{Negate: "-", BitNot: "^", LogicalNot: "!", AddressOf: "@"}
	for op, want := range unary {
		assert.Equal(t, want, op.String())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	assert.Less(t, LogicalOr.Precedence(), LogicalAnd.Precedence())
	assert.Less(t, LogicalAnd.Precedence(), Equal.Precedence())
	assert.Less(t, Greater.Precedence(), Add.Precedence())
	assert.Less(t, BitXor.Precedence(), Multiply.Precedence())
	assert.Equal(t, ShiftLeft.Precedence(), BitClear.Precedence())
	assert.Equal(t, PrecedenceNone, BinaryOperator(0).Precedence())
}

func TestInvalidOperators(t *testing.T) {
	for _, op := range []BinaryOperator{0, -3, ShiftRight + 1} {
		_, err := op.Token()
		assert.ErrorIs(t, err, ErrInvalidOperator)
		assert.False(t, op.Valid())
		assert.Contains(t, op.String(), "BinaryOperator(")
	}
	for _, op := range []UnaryOperator{0, AddressOf + 1} {
		_, err := op.Token()
		assert.ErrorIs(t, err, ErrInvalidOperator)
		assert.Contains(t, op.String(), "UnaryOperator(")
	}

	_, ok := LookupBinaryOperator("**")
	assert.False(t, ok)
	_, ok = LookupUnaryOperator("+")
	assert.False(t, ok)
}
