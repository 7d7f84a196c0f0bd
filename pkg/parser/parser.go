// Package parser builds primordial syntax trees from source text.
//
// The parser is recursive descent over the token slice produced by the lexer.
// It stops at the first error; there is no recovery.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/primordial/pkg/ast"
	"github.com/leapstack-labs/primordial/pkg/lexer"
	"github.com/leapstack-labs/primordial/pkg/token"
)

// Error is a syntax error at a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger traces every production at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser holds the tokens of one source text.
type Parser struct {
	tokens  []token.Token
	current int
	logger  *slog.Logger
	lexErr  error
}

// New scans source and returns a parser positioned at its first token.
func New(source, filename string, opts ...Option) *Parser {
	l := lexer.New(source, filename)
	p := &Parser{
		tokens: l.ScanTokens(),
		logger: slog.New(slog.DiscardHandler),
	}
	if l.HasErrors() {
		first := l.Errors()[0]
		p.lexErr = &Error{Pos: first.Pos, Msg: first.Message}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses a complete source file.
func ParseFile(source, filename string, opts ...Option) (*ast.File, error) {
	p := New(source, filename, opts...)
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	return p.parseFile()
}

// ParseType parses a single type.
func ParseType(source string, opts ...Option) (ast.Type, error) {
	p := New(source, "", opts...)
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseExpr parses a single expression.
func ParseExpr(source string, opts ...Option) (ast.Expr, error) {
	p := New(source, "", opts...)
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return e, nil
}

// ---------- token helpers ----------

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) check(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Type != token.EOF {
		p.current++
	}
	return tok
}

func (p *Parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(t token.Type, context string) (token.Token, error) {
	if !p.check(t) {
		return token.Token{}, p.errorf("expected %s %s, found %s", t, context, p.describe(p.peek()))
	}
	return p.advance(), nil
}

func (p *Parser) expectEnd() error {
	if !p.check(token.EOF) {
		return p.errorf("unexpected %s after end of input", p.describe(p.peek()))
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Pos: p.peek().Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%s %s", tok.Type, tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Type.String())
}

func (p *Parser) trace(production string) {
	tok := p.peek()
	p.logger.Debug("parse", "production", production, "token", tok.String(), "pos", tok.Pos.String())
}

// ---------- file ----------

func (p *Parser) parseFile() (*ast.File, error) {
	p.trace("file")
	if _, err := p.expect(token.PACKAGE, "at start of file"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT, "after package")
	if err != nil {
		return nil, err
	}

	var imports []*ast.Import
	for p.check(token.IMPORT) {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	if !p.check(token.EOF) {
		return nil, p.errorf("expected import or end of file, found %s", p.describe(p.peek()))
	}
	return ast.NewFile(name.Literal, imports), nil
}

func (p *Parser) parseImport() (*ast.Import, error) {
	p.trace("import")
	p.advance()

	var spec ast.ImportSpec
	first, simple, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if p.check(token.IDENT) || p.check(token.STRING) {
		if !simple {
			return nil, p.errorf("import alias %s must be an identifier", first)
		}
		spec.Alias = first
		if spec.Path, _, err = p.parsePath(); err != nil {
			return nil, err
		}
	} else {
		spec.Path = first
	}
	return spec.Build()
}

// parsePath reads a quoted path or a bare one such as github.com/a/b-c.
// simple reports whether the path is a single identifier.
func (p *Parser) parsePath() (path string, simple bool, err error) {
	if p.check(token.STRING) {
		return p.advance().Literal, false, nil
	}
	first, err := p.expect(token.IDENT, "in import path")
	if err != nil {
		return "", false, err
	}
	path, simple = first.Literal, true
	for p.check(token.SLASH) || p.check(token.DOT) || p.check(token.MINUS) {
		sep := p.advance()
		next := p.peek()
		if next.Type != token.IDENT && next.Type != token.NUMBER {
			return "", false, p.errorf("expected path element after %q", sep.Literal)
		}
		p.advance()
		path += sep.Literal + next.Literal
		simple = false
	}
	return path, simple, nil
}

// ---------- types ----------

func startsType(t token.Type) bool {
	switch t {
	case token.IDENT, token.FUNC, token.STRUCT, token.UNION, token.INTERFACE:
		return true
	}
	return false
}

func (p *Parser) parseType() (ast.Type, error) {
	p.trace("type")
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(token.QUESTION):
			p.advance()
			t = ast.NewPointerType(t)
		case p.check(token.DOT) && p.peekNext().Type == token.IDENT:
			p.advance()
			t = ast.NewNestedTypeName(t, p.advance().Literal)
		case p.check(token.LBRACKET):
			if t, err = p.parseBracketSuffix(t); err != nil {
				return nil, err
			}
		default:
			return t, nil
		}
	}
}

func (p *Parser) parsePrimaryType() (ast.Type, error) {
	switch tok := p.peek(); tok.Type {
	case token.IDENT:
		p.advance()
		if p.check(token.DOT) && p.peekNext().Type == token.IDENT {
			p.advance()
			return ast.NewQualifiedTypeName(tok.Literal, p.advance().Literal), nil
		}
		return ast.NewNamedType(tok.Literal), nil
	case token.FUNC:
		return p.parseFunctionType()
	case token.STRUCT:
		p.advance()
		fields, err := p.parseFields("struct")
		if err != nil {
			return nil, err
		}
		return ast.NewStructType(fields...), nil
	case token.UNION:
		p.advance()
		fields, err := p.parseFields("union")
		if err != nil {
			return nil, err
		}
		return ast.NewUnionType(fields...), nil
	case token.INTERFACE:
		return p.parseInterfaceType()
	default:
		return nil, p.errorf("expected type, found %s", p.describe(tok))
	}
}

// parseBracketSuffix handles T[], T[_], T[A, B] and T[size]. A bracketed
// list of types wins over an array size.
func (p *Parser) parseBracketSuffix(item ast.Type) (ast.Type, error) {
	p.trace("bracket")
	p.advance()
	if p.match(token.RBRACKET) {
		return ast.NewSliceType(item), nil
	}
	if tok := p.peek(); tok.Type == token.IDENT && tok.Literal == "_" && p.peekNext().Type == token.RBRACKET {
		p.advance()
		p.advance()
		return ast.NewRawSliceType(item), nil
	}

	mark := p.current
	if startsType(p.peek().Type) {
		args, err := p.parseTypeList()
		if err == nil && p.match(token.RBRACKET) {
			return ast.NewTypeInstantiation(item, args...), nil
		}
		p.current = mark
	}

	size, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET, "after array size"); err != nil {
		return nil, err
	}
	return ast.NewArrayType(item, size), nil
}

func (p *Parser) parseTypeList() ([]ast.Type, error) {
	var types []ast.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.match(token.COMMA) {
			return types, nil
		}
	}
}

// parseParenTypes reads "(" [types] ")".
func (p *Parser) parseParenTypes(context string) ([]ast.Type, error) {
	if _, err := p.expect(token.LPAREN, context); err != nil {
		return nil, err
	}
	if p.match(token.RPAREN) {
		return nil, nil
	}
	types, err := p.parseTypeList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, context); err != nil {
		return nil, err
	}
	return types, nil
}

func (p *Parser) parseFunctionType() (*ast.FunctionType, error) {
	p.trace("func")
	if _, err := p.expect(token.FUNC, "in signature"); err != nil {
		return nil, err
	}
	inputs, err := p.parseParenTypes("around parameters")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW, "before results"); err != nil {
		return nil, err
	}
	outputs, err := p.parseParenTypes("around results")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionType(inputs, outputs), nil
}

// parseFields reads a brace-delimited field list. A field is named when its
// type starts on the same line as the leading identifier.
func (p *Parser) parseFields(keyword string) ([]*ast.Field, error) {
	p.trace(keyword)
	if _, err := p.expect(token.LBRACE, "after "+keyword); err != nil {
		return nil, err
	}
	var fields []*ast.Field
	for !p.check(token.RBRACE) {
		if p.check(token.EOF) {
			return nil, p.errorf("%s body not closed", keyword)
		}
		var spec ast.FieldSpec
		name, next := p.peek(), p.peekNext()
		if name.Type == token.IDENT && startsType(next.Type) && next.Pos.Line == name.Pos.Line {
			p.advance()
			spec.Name = name.Literal
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		spec.Type = t
		f, err := spec.Build()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	p.advance()
	return fields, nil
}

func (p *Parser) parseInterfaceType() (*ast.InterfaceType, error) {
	p.trace("interface")
	p.advance()
	if _, err := p.expect(token.LBRACE, "after interface"); err != nil {
		return nil, err
	}
	var methods []*ast.Method
	for !p.match(token.RBRACE) {
		name, err := p.expect(token.IDENT, "as method name")
		if err != nil {
			return nil, err
		}
		sig, err := p.parseFunctionType()
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.NewMethod(name.Literal, sig))
	}
	return ast.NewInterfaceType(methods...), nil
}

// ---------- expressions ----------

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(ast.PrecedenceOr)
}

func (p *Parser) binaryOperator() (ast.BinaryOperator, bool) {
	tok := p.peek()
	if !tok.Type.IsOperator() {
		return 0, false
	}
	return ast.LookupBinaryOperator(tok.Type.String())
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.binaryOperator()
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		p.trace("binary")
		p.advance()
		right, err := p.parseBinary(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if tok := p.peek(); tok.Type.IsOperator() {
		if op, ok := ast.LookupUnaryOperator(tok.Type.String()); ok {
			p.trace("unary")
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return ast.NewUnaryExpr(op, operand), nil
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(token.LBRACKET):
			p.advance()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "after index"); err != nil {
				return nil, err
			}
			e = ast.NewArrayAccess(e, index)
		case p.check(token.DOT):
			p.advance()
			if p.check(token.IDENT) {
				e = ast.NewFieldAccess(e, p.advance().Literal)
			} else {
				e = ast.NewPointerDereference(e)
			}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	p.trace("primary")
	tok := p.peek()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return ast.NewNumericLiteral(tok.Literal), nil
	case token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Literal), nil
	case token.TRUE:
		p.advance()
		return ast.NewBooleanLiteral(true), nil
	case token.FALSE:
		p.advance()
		return ast.NewBooleanLiteral(false), nil
	case token.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close group"); err != nil {
			return nil, err
		}
		return e, nil
	}

	if !startsType(tok.Type) {
		return nil, p.errorf("expected expression, found %s", p.describe(tok))
	}
	if cast, ok, err := p.tryTypeCast(); ok || err != nil {
		return cast, err
	}
	if tok.Type == token.IDENT && p.peekNext().Type == token.DOT {
		p.advance()
		p.advance()
		name, err := p.expect(token.IDENT, "after package name")
		if err != nil {
			return nil, err
		}
		return ast.NewPackageAccess(tok.Literal, name.Literal), nil
	}
	return nil, p.errorf("expected expression, found %s", p.describe(tok))
}

// tryTypeCast parses T(expr) when a type is directly followed by "(". It
// rewinds and reports false when the tokens do not form a cast.
func (p *Parser) tryTypeCast() (ast.Expr, bool, error) {
	mark := p.current
	t, err := p.parseType()
	if err != nil || !p.check(token.LPAREN) {
		p.current = mark
		return nil, false, nil
	}
	p.trace("cast")
	p.advance()
	e, err := p.parseExpr()
	if err != nil {
		return nil, true, err
	}
	if _, err := p.expect(token.RPAREN, "to close conversion"); err != nil {
		return nil, true, err
	}
	return ast.NewTypeCast(t, e), true, nil
}
