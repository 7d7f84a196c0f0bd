package ast

import (
	"io"
	"slices"
)

// NamedType is an unqualified type reference such as int.
type NamedType struct {
	name string
}

// NewNamedType creates a reference to the type called name.
func NewNamedType(name string) *NamedType {
	return &NamedType{name: name}
}

// Name returns the type name.
func (t *NamedType) Name() string { return t.name }

// QualifiedTypeName is a dotted type reference. It is either package
// qualified (pkg.Name) or nested under another type (Parent.Name).
type QualifiedTypeName struct {
	pkg    string
	parent Type
	name   string
}

// NewQualifiedTypeName creates the package-qualified form pkg.name.
func NewQualifiedTypeName(pkg, name string) *QualifiedTypeName {
	return &QualifiedTypeName{pkg: pkg, name: name}
}

// NewNestedTypeName creates the parent-qualified form parent.name.
func NewNestedTypeName(parent Type, name string) *QualifiedTypeName {
	return &QualifiedTypeName{parent: parent, name: name}
}

// IsNested reports whether the qualifier is a type rather than a package.
func (t *QualifiedTypeName) IsNested() bool { return t.parent != nil }

// Package returns the package qualifier; it is empty for the nested form.
func (t *QualifiedTypeName) Package() string { return t.pkg }

// Parent returns the qualifying type; it is nil for the package form.
func (t *QualifiedTypeName) Parent() Type { return t.parent }

// Name returns the final, qualified name.
func (t *QualifiedTypeName) Name() string { return t.name }

// ArrayType is a fixed-size array T[size].
type ArrayType struct {
	item Type
	size Expr
}

// NewArrayType creates item[size].
func NewArrayType(item Type, size Expr) *ArrayType {
	return &ArrayType{item: item, size: size}
}

// Item returns the element type.
func (t *ArrayType) Item() Type { return t.item }

// Size returns the length expression.
func (t *ArrayType) Size() Expr { return t.size }

// SliceType is a growable slice T[].
type SliceType struct {
	item Type
}

// NewSliceType creates item[].
func NewSliceType(item Type) *SliceType {
	return &SliceType{item: item}
}

// Item returns the element type.
func (t *SliceType) Item() Type { return t.item }

// RawSliceType is an unmanaged slice T[_].
type RawSliceType struct {
	item Type
}

// NewRawSliceType creates item[_].
func NewRawSliceType(item Type) *RawSliceType {
	return &RawSliceType{item: item}
}

// Item returns the element type.
func (t *RawSliceType) Item() Type { return t.item }

// PointerType is a nullable reference T?.
type PointerType struct {
	item Type
}

// NewPointerType creates item?.
func NewPointerType(item Type) *PointerType {
	return &PointerType{item: item}
}

// Item returns the pointee type.
func (t *PointerType) Item() Type { return t.item }

// FunctionType is a signature func (in...) -> (out...).
type FunctionType struct {
	inputs  []Type
	outputs []Type
}

// NewFunctionType takes ownership of both slices.
func NewFunctionType(inputs, outputs []Type) *FunctionType {
	return &FunctionType{inputs: inputs, outputs: outputs}
}

// Inputs returns a copy of the parameter types.
func (t *FunctionType) Inputs() []Type { return slices.Clone(t.inputs) }

// Outputs returns a copy of the result types.
func (t *FunctionType) Outputs() []Type { return slices.Clone(t.outputs) }

// StructType is a product of named and embedded fields.
type StructType struct {
	fields []*Field
}

// NewStructType takes ownership of fields, kept in source order.
func NewStructType(fields ...*Field) *StructType {
	return &StructType{fields: fields}
}

// Fields returns a copy of the fields.
func (t *StructType) Fields() []*Field { return slices.Clone(t.fields) }

// UnionType overlays its fields.
type UnionType struct {
	fields []*Field
}

// NewUnionType takes ownership of fields, kept in source order.
func NewUnionType(fields ...*Field) *UnionType {
	return &UnionType{fields: fields}
}

// Fields returns a copy of the fields.
func (t *UnionType) Fields() []*Field { return slices.Clone(t.fields) }

// InterfaceType is an ordered method set.
type InterfaceType struct {
	methods []*Method
}

// NewInterfaceType takes ownership of methods, kept in source order.
func NewInterfaceType(methods ...*Method) *InterfaceType {
	return &InterfaceType{methods: methods}
}

// Methods returns a copy of the methods.
func (t *InterfaceType) Methods() []*Method { return slices.Clone(t.methods) }

// TypeInstantiation applies a generic type to arguments, T[A, B].
type TypeInstantiation struct {
	generic Type
	args    []Type
}

// NewTypeInstantiation creates generic[args...].
func NewTypeInstantiation(generic Type, args ...Type) *TypeInstantiation {
	return &TypeInstantiation{generic: generic, args: args}
}

// Generic returns the type being instantiated.
func (t *TypeInstantiation) Generic() Type { return t.generic }

// Args returns a copy of the type arguments.
func (t *TypeInstantiation) Args() []Type { return slices.Clone(t.args) }

func (*NamedType) typeNode()         {}
func (*QualifiedTypeName) typeNode() {}
func (*ArrayType) typeNode()         {}
func (*SliceType) typeNode()         {}
func (*RawSliceType) typeNode()      {}
func (*PointerType) typeNode()       {}
func (*FunctionType) typeNode()      {}
func (*StructType) typeNode()        {}
func (*UnionType) typeNode()         {}
func (*InterfaceType) typeNode()     {}
func (*TypeInstantiation) typeNode() {}

// Render implements Node.
func (t *NamedType) Render(w io.Writer, level int) error         { return render(w, t, level) }
func (t *QualifiedTypeName) Render(w io.Writer, level int) error { return render(w, t, level) }
func (t *ArrayType) Render(w io.Writer, level int) error         { return render(w, t, level) }
func (t *SliceType) Render(w io.Writer, level int) error         { return render(w, t, level) }
func (t *RawSliceType) Render(w io.Writer, level int) error      { return render(w, t, level) }
func (t *PointerType) Render(w io.Writer, level int) error       { return render(w, t, level) }
func (t *FunctionType) Render(w io.Writer, level int) error      { return render(w, t, level) }
func (t *StructType) Render(w io.Writer, level int) error        { return render(w, t, level) }
func (t *UnionType) Render(w io.Writer, level int) error         { return render(w, t, level) }
func (t *InterfaceType) Render(w io.Writer, level int) error     { return render(w, t, level) }
func (t *TypeInstantiation) Render(w io.Writer, level int) error { return render(w, t, level) }
