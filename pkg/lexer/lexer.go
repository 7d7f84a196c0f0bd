// Package lexer turns primordial source text into tokens.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/primordial/pkg/token"
)

// Error is a lexical error at a position.
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Lexer scans a whole source string into a token slice.
type Lexer struct {
	source   string
	filename string
	tokens   []token.Token

	start     int // offset of the token being scanned
	current   int // offset of the next unread byte
	line      int
	lineStart int // offset of the first byte of the current line

	startPos token.Position
	errors   []Error
}

// New creates a lexer for source. filename is only used in positions.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		tokens:   make([]token.Token, 0, len(source)/4+1),
		line:     1,
	}
}

// ScanTokens scans the entire source. The last token is always EOF.
func (l *Lexer) ScanTokens() []token.Token {
	for {
		l.skipWhitespaceAndComments()
		l.start = l.current
		l.startPos = l.pos()
		if l.isAtEnd() {
			break
		}
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.Token{Type: token.EOF, Pos: l.pos()})
	return l.tokens
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []Error {
	return l.errors
}

// HasErrors reports whether scanning produced errors.
func (l *Lexer) HasErrors() bool {
	return len(l.errors) > 0
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Filename: l.filename,
		Offset:   l.current,
		Line:     l.line,
		Column:   utf8.RuneCountInString(l.source[l.lineStart:l.current]) + 1,
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	if c == '\n' {
		l.line++
		l.lineStart = l.current
	}
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.peek() != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		switch c := l.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekNext() == '*':
			startPos := l.pos()
			l.advance()
			l.advance()
			closed := false
			for !l.isAtEnd() {
				if l.peek() == '*' && l.peekNext() == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				l.errorAt(startPos, "comment not terminated")
			}
		default:
			return
		}
	}
}

func (l *Lexer) addToken(t token.Type) {
	l.tokens = append(l.tokens, token.Token{
		Type:    t,
		Literal: l.source[l.start:l.current],
		Pos:     l.startPos,
	})
}

func (l *Lexer) errorAt(pos token.Position, format string, args ...any) {
	l.errors = append(l.errors, Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (l *Lexer) illegal(format string, args ...any) {
	l.errorAt(l.startPos, format, args...)
	l.addToken(token.ILLEGAL)
}

func (l *Lexer) scanToken() {
	c := l.peek()
	switch {
	case isLetter(c) || c >= utf8.RuneSelf:
		l.scanIdentifier()
		return
	case isDigit(c):
		l.scanNumber()
		return
	}

	l.advance()
	switch c {
	case '"':
		l.scanString()
	case '`':
		l.scanRawString()
	case '\'':
		l.scanRune()
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '{':
		l.addToken(token.LBRACE)
	case '}':
		l.addToken(token.RBRACE)
	case '[':
		l.addToken(token.LBRACKET)
	case ']':
		l.addToken(token.RBRACKET)
	case ',':
		l.addToken(token.COMMA)
	case '.':
		l.addToken(token.DOT)
	case '?':
		l.addToken(token.QUESTION)
	case '@':
		l.addToken(token.AT)
	case '+':
		l.addToken(token.PLUS)
	case '*':
		l.addToken(token.STAR)
	case '/':
		l.addToken(token.SLASH)
	case '%':
		l.addToken(token.PERCENT)
	case '^':
		l.addToken(token.CARET)
	case '-':
		if l.match('>') {
			l.addToken(token.ARROW)
		} else {
			l.addToken(token.MINUS)
		}
	case '&':
		switch {
		case l.match('&'):
			l.addToken(token.LAND)
		case l.match('^'):
			l.addToken(token.AND_NOT)
		default:
			l.addToken(token.AMP)
		}
	case '|':
		if l.match('|') {
			l.addToken(token.LOR)
		} else {
			l.addToken(token.PIPE)
		}
	case '=':
		if l.match('=') {
			l.addToken(token.EQ)
		} else {
			l.illegal("unexpected '='")
		}
	case '!':
		if l.match('=') {
			l.addToken(token.NE)
		} else {
			l.addToken(token.NOT)
		}
	case '<':
		switch {
		case l.match('<'):
			l.addToken(token.SHL)
		case l.match('='):
			l.addToken(token.LE)
		default:
			l.addToken(token.LT)
		}
	case '>':
		switch {
		case l.match('>'):
			l.addToken(token.SHR)
		case l.match('='):
			l.addToken(token.GE)
		default:
			l.addToken(token.GT)
		}
	default:
		l.illegal("unexpected character %q", c)
	}
}

func (l *Lexer) scanIdentifier() {
	for !l.isAtEnd() {
		c := l.peek()
		if isLetter(c) || isDigit(c) {
			l.current++
			continue
		}
		if c < utf8.RuneSelf {
			break
		}
		r, size := utf8.DecodeRuneInString(l.source[l.current:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.current += size
	}
	if l.current == l.start {
		// A non-letter multi-byte rune.
		_, size := utf8.DecodeRuneInString(l.source[l.current:])
		l.current += size
		l.illegal("unexpected character %q", l.source[l.start:l.current])
		return
	}
	l.addToken(token.Lookup(l.source[l.start:l.current]))
}

// scanNumber keeps the lexeme unparsed. It accepts Go-style integer and
// floating point forms, including base prefixes and digit separators.
func (l *Lexer) scanNumber() {
	digit := isDigitOrSeparator
	exponent := byte('e')
	if l.peek() == '0' {
		switch l.peekNext() {
		case 'x', 'X':
			digit, exponent = isHexDigitOrSeparator, 'p'
			l.current += 2
		case 'b', 'B', 'o', 'O':
			l.current += 2
		}
	}
	for digit(l.peek()) {
		l.current++
	}
	if l.peek() == '.' && digit(l.peekNext()) {
		l.current++
		for digit(l.peek()) {
			l.current++
		}
	}
	if c := l.peek() | 0x20; c == exponent {
		l.current++
		if l.peek() == '+' || l.peek() == '-' {
			l.current++
		}
		if !isDigit(l.peek()) {
			l.illegal("malformed exponent in %q", l.source[l.start:l.current])
			return
		}
		for isDigitOrSeparator(l.peek()) {
			l.current++
		}
	}
	if l.peek() == 'i' {
		l.current++
	}
	if isLetter(l.peek()) {
		l.current++
		l.illegal("malformed number %q", l.source[l.start:l.current])
		return
	}
	l.addToken(token.NUMBER)
}

func (l *Lexer) scanString() {
	for {
		if l.isAtEnd() || l.peek() == '\n' {
			l.illegal("string literal not terminated")
			return
		}
		c := l.advance()
		if c == '\\' {
			if l.isAtEnd() {
				continue
			}
			l.advance()
			continue
		}
		if c == '"' {
			break
		}
	}
	l.addToken(token.STRING)
}

func (l *Lexer) scanRawString() {
	for {
		if l.isAtEnd() {
			l.illegal("raw string literal not terminated")
			return
		}
		if l.advance() == '`' {
			break
		}
	}
	l.addToken(token.STRING)
}

func (l *Lexer) scanRune() {
	for {
		if l.isAtEnd() || l.peek() == '\n' {
			l.illegal("rune literal not terminated")
			return
		}
		c := l.advance()
		if c == '\\' && !l.isAtEnd() {
			l.advance()
			continue
		}
		if c == '\'' {
			break
		}
	}
	l.addToken(token.STRING)
}

func isLetter(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isDigitOrSeparator(c byte) bool {
	return isDigit(c) || c == '_'
}

func isHexDigitOrSeparator(c byte) bool {
	return isDigitOrSeparator(c) || ('a' <= c|0x20 && c|0x20 <= 'f')
}
