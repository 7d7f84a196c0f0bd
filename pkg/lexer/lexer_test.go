package lexer

import (
	"testing"

	"github.com/leapstack-labs/primordial/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanTypes(t *testing.T, src string) ([]token.Type, []string) {
	t.Helper()
	l := New(src, "test.pm")
	toks := l.ScanTokens()
	require.False(t, l.HasErrors(), "errors: %v", l.Errors())
	types := make([]token.Type, len(toks))
	lits := make([]string, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
		lits[i] = tok.Literal
	}
	return types, lits
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Type
	}{
		{
			name:     "package clause",
			input:    "package main",
			expected: []token.Type{token.PACKAGE, token.IDENT, token.EOF},
		},
		{
			name:     "aliased import",
			input:    "import f fmt\n",
			expected: []token.Type{token.IMPORT, token.IDENT, token.IDENT, token.EOF},
		},
		{
			name:     "function type",
			input:    "func (int) -> (bool)",
			expected: []token.Type{token.FUNC, token.LPAREN, token.IDENT, token.RPAREN, token.ARROW, token.LPAREN, token.IDENT, token.RPAREN, token.EOF},
		},
		{
			name:     "slice suffixes",
			input:    "u8[_][]?",
			expected: []token.Type{token.IDENT, token.LBRACKET, token.IDENT, token.RBRACKET, token.LBRACKET, token.RBRACKET, token.QUESTION, token.EOF},
		},
		{
			name:  "operators longest match",
			input: "&^ & && | || << <= < >> >= > == != ! - ->",
			expected: []token.Type{
				token.AND_NOT, token.AMP, token.LAND, token.PIPE, token.LOR,
				token.SHL, token.LE, token.LT, token.SHR, token.GE, token.GT,
				token.EQ, token.NE, token.NOT, token.MINUS, token.ARROW, token.EOF,
			},
		},
		{
			name:     "comments are skipped",
			input:    "// leading\npackage /* inline */ main // trailing",
			expected: []token.Type{token.PACKAGE, token.IDENT, token.EOF},
		},
		{
			name:     "dereference then field",
			input:    "p..x",
			expected: []token.Type{token.IDENT, token.DOT, token.DOT, token.IDENT, token.EOF},
		},
		{
			name:     "keywords",
			input:    "struct union interface true false",
			expected: []token.Type{token.STRUCT, token.UNION, token.INTERFACE, token.TRUE, token.FALSE, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types, _ := scanTypes(t, tt.input)
			assert.Equal(t, tt.expected, types)
		})
	}
}

func TestScanLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"0", token.NUMBER},
		{"1_000_000", token.NUMBER},
		{"0xFF_ff", token.NUMBER},
		{"0b1010", token.NUMBER},
		{"0o755", token.NUMBER},
		{"3.14", token.NUMBER},
		{"6.02e+23", token.NUMBER},
		{"0x1p-2", token.NUMBER},
		{"2i", token.NUMBER},
		{`"hello\n\"world\""`, token.STRING},
		{"`raw\nstring`", token.STRING},
		{`'\n'`, token.STRING},
		{"héllo", token.IDENT},
		{"_", token.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			types, lits := scanTypes(t, tt.input)
			require.Len(t, types, 2)
			assert.Equal(t, tt.typ, types[0])
			assert.Equal(t, tt.input, lits[0], "literal must be kept verbatim")
		})
	}
}

func TestNumberFollowedByDot(t *testing.T) {
	types, lits := scanTypes(t, "1.x")
	assert.Equal(t, []token.Type{token.NUMBER, token.DOT, token.IDENT, token.EOF}, types)
	assert.Equal(t, "1", lits[0])
}

func TestPositions(t *testing.T) {
	l := New("package main\n\n  import fmt", "a.pm")
	toks := l.ScanTokens()
	require.Len(t, toks, 5)

	assert.Equal(t, token.Position{Filename: "a.pm", Offset: 0, Line: 1, Column: 1}, toks[0].Pos)
	assert.Equal(t, 9, toks[1].Pos.Column)
	assert.Equal(t, 3, toks[2].Pos.Line)
	assert.Equal(t, 3, toks[2].Pos.Column)
	assert.Equal(t, "a.pm:3:10", toks[3].Pos.String())
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unterminated string", `"abc`, "string literal not terminated"},
		{"newline in string", "\"ab\ncd\"", "string literal not terminated"},
		{"unterminated raw", "`abc", "raw string literal not terminated"},
		{"unterminated comment", "/* abc", "comment not terminated"},
		{"single equals", "a = b", "unexpected '='"},
		{"stray character", "a # b", "unexpected character"},
		{"bad exponent", "1e+", "malformed exponent"},
		{"letters after number", "12ab", "malformed number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input, "")
			l.ScanTokens()
			require.True(t, l.HasErrors())
			assert.Contains(t, l.Errors()[0].Error(), tt.msg)
		})
	}
}
