package ast

import (
	"errors"
	"fmt"
	"io"
)

// ErrIncompleteSpec is returned by Build when a required attribute is unset.
var ErrIncompleteSpec = errors.New("incomplete node spec")

// Field is a member of a struct or union. A field without a name embeds its
// type.
type Field struct {
	name string
	typ  Type
}

// NewField creates the named field name typ.
func NewField(name string, typ Type) *Field {
	return &Field{name: name, typ: typ}
}

// NewEmbeddedField creates a field that embeds typ.
func NewEmbeddedField(typ Type) *Field {
	return &Field{typ: typ}
}

// Name returns the field name, or "" for an embedding.
func (f *Field) Name() string { return f.name }

// Type returns the field type.
func (f *Field) Type() Type { return f.typ }

// IsEmbedding reports whether the field has no name.
func (f *Field) IsEmbedding() bool { return f.name == "" }

// FieldSpec collects the attributes of a field while they are still being
// parsed. An empty Name yields an embedded field.
type FieldSpec struct {
	Name string
	Type Type
}

// Build converts the spec into a Field.
func (s FieldSpec) Build() (*Field, error) {
	if s.Type == nil {
		return nil, fmt.Errorf("%w: field type is required", ErrIncompleteSpec)
	}
	if s.Name == "" {
		return NewEmbeddedField(s.Type), nil
	}
	return NewField(s.Name, s.Type), nil
}

// Method is one entry of an interface's method set.
type Method struct {
	name      string
	signature *FunctionType
}

// NewMethod pairs name with its signature.
func NewMethod(name string, signature *FunctionType) *Method {
	return &Method{name: name, signature: signature}
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// Signature returns the method signature.
func (m *Method) Signature() *FunctionType { return m.signature }

// Render implements Node.
func (f *Field) Render(w io.Writer, level int) error  { return render(w, f, level) }
func (m *Method) Render(w io.Writer, level int) error { return render(w, m, level) }
