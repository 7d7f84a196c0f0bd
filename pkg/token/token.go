// Package token defines the lexical tokens of the primordial language.
package token

import "fmt"

// Type identifies the kind of a token.
type Type int

// Token types.
const (
	ILLEGAL Type = iota
	EOF

	// Literals
	IDENT  // main
	NUMBER // 0x1F
	STRING // "abc"

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	AMP     // &
	PIPE    // |
	CARET   // ^
	AND_NOT // &^
	SHL     // <<
	SHR     // >>
	LAND    // &&
	LOR     // ||
	EQ      // ==
	NE      // !=
	LT      // <
	LE      // <=
	GT      // >
	GE      // >=
	NOT     // !
	AT      // @

	// Delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	DOT      // .
	QUESTION // ?
	ARROW    // ->

	keywordStart
	PACKAGE
	IMPORT
	FUNC
	STRUCT
	UNION
	INTERFACE
	TRUE
	FALSE
	keywordEnd
)

var names = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	AMP:     "&",
	PIPE:    "|",
	CARET:   "^",
	AND_NOT: "&^",
	SHL:     "<<",
	SHR:     ">>",
	LAND:    "&&",
	LOR:     "||",
	EQ:      "==",
	NE:      "!=",
	LT:      "<",
	LE:      "<=",
	GT:      ">",
	GE:      ">=",
	NOT:     "!",
	AT:      "@",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACE:   "{",
	RBRACE:   "}",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
	DOT:      ".",
	QUESTION: "?",
	ARROW:    "->",

	PACKAGE:   "package",
	IMPORT:    "import",
	FUNC:      "func",
	STRUCT:    "struct",
	UNION:     "union",
	INTERFACE: "interface",
	TRUE:      "true",
	FALSE:     "false",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsKeyword reports whether t is a reserved word.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsOperator reports whether t is an operator token.
func (t Type) IsOperator() bool {
	return t >= PLUS && t <= AT
}

var keywords = map[string]Type{
	"package":   PACKAGE,
	"import":    IMPORT,
	"func":      FUNC,
	"struct":    STRUCT,
	"union":     UNION,
	"interface": INTERFACE,
	"true":      TRUE,
	"false":     FALSE,
}

// Lookup maps an identifier to its keyword type, or IDENT.
func Lookup(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Position is a location in a source file. Line and Column start at 1.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Token is a lexical token with its literal text.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, STRING, ILLEGAL:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}
