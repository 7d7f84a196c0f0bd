package ast

import "io"

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	op    BinaryOperator
	left  Expr
	right Expr
}

// NewBinaryExpr creates left op right.
func NewBinaryExpr(op BinaryOperator, left, right Expr) *BinaryExpr {
	return &BinaryExpr{op: op, left: left, right: right}
}

// Op returns the operator.
func (e *BinaryExpr) Op() BinaryOperator { return e.op }

// Left returns the left operand.
func (e *BinaryExpr) Left() Expr { return e.left }

// Right returns the right operand.
func (e *BinaryExpr) Right() Expr { return e.right }

// UnaryExpr applies a prefix operator to an operand.
type UnaryExpr struct {
	op      UnaryOperator
	operand Expr
}

// NewUnaryExpr creates op operand.
func NewUnaryExpr(op UnaryOperator, operand Expr) *UnaryExpr {
	return &UnaryExpr{op: op, operand: operand}
}

// Op returns the operator.
func (e *UnaryExpr) Op() UnaryOperator { return e.op }

// Operand returns the operand.
func (e *UnaryExpr) Operand() Expr { return e.operand }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	value bool
}

// NewBooleanLiteral creates true or false.
func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{value: value}
}

// Value returns the literal value.
func (e *BooleanLiteral) Value() bool { return e.value }

// StringLiteral holds the literal exactly as written, quotes included.
type StringLiteral struct {
	value string
}

// NewStringLiteral takes the lexeme with its quotes.
func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{value: value}
}

// Value returns the lexeme, quotes included.
func (e *StringLiteral) Value() string { return e.value }

// NumericLiteral keeps the raw lexeme so base and digit grouping survive.
type NumericLiteral struct {
	value string
}

// NewNumericLiteral takes the lexeme as written.
func NewNumericLiteral(value string) *NumericLiteral {
	return &NumericLiteral{value: value}
}

// Value returns the lexeme.
func (e *NumericLiteral) Value() string { return e.value }

// ArrayAccess is an index expression a[i].
type ArrayAccess struct {
	array Expr
	index Expr
}

// NewArrayAccess creates array[index].
func NewArrayAccess(array, index Expr) *ArrayAccess {
	return &ArrayAccess{array: array, index: index}
}

// Array returns the indexed expression.
func (e *ArrayAccess) Array() Expr { return e.array }

// Index returns the index expression.
func (e *ArrayAccess) Index() Expr { return e.index }

// FieldAccess selects a field of a record, r.f.
type FieldAccess struct {
	record Expr
	field  string
}

// NewFieldAccess creates record.field.
func NewFieldAccess(record Expr, field string) *FieldAccess {
	return &FieldAccess{record: record, field: field}
}

// Record returns the expression whose field is selected.
func (e *FieldAccess) Record() Expr { return e.record }

// Field returns the field name.
func (e *FieldAccess) Field() string { return e.field }

// PackageAccess refers to a name exported by a package, pkg.Name.
type PackageAccess struct {
	pkg  string
	name string
}

// NewPackageAccess creates pkg.name.
func NewPackageAccess(pkg, name string) *PackageAccess {
	return &PackageAccess{pkg: pkg, name: name}
}

// Package returns the package name.
func (e *PackageAccess) Package() string { return e.pkg }

// Name returns the exported name.
func (e *PackageAccess) Name() string { return e.name }

// PointerDereference follows a pointer. Its source form is the operand
// followed by a bare dot, p.
type PointerDereference struct {
	pointer Expr
}

// NewPointerDereference creates pointer. (operand and a bare dot).
func NewPointerDereference(pointer Expr) *PointerDereference {
	return &PointerDereference{pointer: pointer}
}

// Pointer returns the dereferenced expression.
func (e *PointerDereference) Pointer() Expr { return e.pointer }

// TypeCast converts an expression to a type, T(expr).
type TypeCast struct {
	target Type
	expr   Expr
}

// NewTypeCast creates target(expr).
func NewTypeCast(target Type, expr Expr) *TypeCast {
	return &TypeCast{target: target, expr: expr}
}

// Target returns the type converted to.
func (e *TypeCast) Target() Type { return e.target }

// Expr returns the converted expression.
func (e *TypeCast) Expr() Expr { return e.expr }

func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*BooleanLiteral) exprNode()     {}
func (*StringLiteral) exprNode()      {}
func (*NumericLiteral) exprNode()     {}
func (*ArrayAccess) exprNode()        {}
func (*FieldAccess) exprNode()        {}
func (*PackageAccess) exprNode()      {}
func (*PointerDereference) exprNode() {}
func (*TypeCast) exprNode()           {}

// Render implements Node.
func (e *BinaryExpr) Render(w io.Writer, level int) error         { return render(w, e, level) }
func (e *UnaryExpr) Render(w io.Writer, level int) error          { return render(w, e, level) }
func (e *BooleanLiteral) Render(w io.Writer, level int) error     { return render(w, e, level) }
func (e *StringLiteral) Render(w io.Writer, level int) error      { return render(w, e, level) }
func (e *NumericLiteral) Render(w io.Writer, level int) error     { return render(w, e, level) }
func (e *ArrayAccess) Render(w io.Writer, level int) error        { return render(w, e, level) }
func (e *FieldAccess) Render(w io.Writer, level int) error        { return render(w, e, level) }
func (e *PackageAccess) Render(w io.Writer, level int) error      { return render(w, e, level) }
func (e *PointerDereference) Render(w io.Writer, level int) error { return render(w, e, level) }
func (e *TypeCast) Render(w io.Writer, level int) error           { return render(w, e, level) }
