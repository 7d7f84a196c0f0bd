package ast

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sprint(t *testing.T, n Node) string {
	t.Helper()
	s, err := Sprint(n)
	require.NoError(t, err)
	return s
}

func renderAt(t *testing.T, n Node, level int) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b, level))
	return b.String()
}

func num(s string) *NumericLiteral { return NewNumericLiteral(s) }
func named(s string) *NamedType    { return NewNamedType(s) }

func TestRender_File(t *testing.T) {
	tests := []struct {
		name     string
		file     *File
		expected string
	}{
		{
			name:     "no imports",
			file:     NewFile("main", nil),
			expected: "package main\n\n",
		},
		{
			name:     "one import",
			file:     NewFile("main", []*Import{NewImport("fmt")}),
			expected: "package main\n\nimport fmt\n\n",
		},
		{
			name:     "two imports",
			file:     NewFile("main", []*Import{NewImport("fmt"), NewImport("os")}),
			expected: "package main\n\nimport fmt\nimport os\n\n",
		},
		{
			name: "aliased import among plain ones",
			file: NewFile("tool", []*Import{
				NewImport("fmt"),
				NewAliasedImport("strings", "str"),
				NewImport(`"net/http"`),
			}),
			expected: "package tool\n\nimport fmt\nimport str strings\nimport \"net/http\"\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sprint(t, tt.file))
		})
	}
}

func TestRender_Import(t *testing.T) {
	assert.Equal(t, "import fmt\n", sprint(t, NewImport("fmt")))
	assert.Equal(t, "import f fmt\n", sprint(t, NewAliasedImport("fmt", "f")))
	assert.Equal(t, "\t\timport fmt\n", renderAt(t, NewImport("fmt"), 2))

	alias, ok := NewImport("fmt").Alias()
	assert.False(t, ok)
	assert.Empty(t, alias)

	alias, ok = NewAliasedImport("fmt", "f").Alias()
	assert.True(t, ok)
	assert.Equal(t, "f", alias)
}

func TestRender_Field(t *testing.T) {
	embedded := NewEmbeddedField(named("Base"))
	assert.True(t, embedded.IsEmbedding())
	assert.Equal(t, "Base", sprint(t, embedded))

	plain := NewField("x", named("int"))
	assert.False(t, plain.IsEmbedding())
	assert.Equal(t, "x int", sprint(t, plain))
	assert.Equal(t, "\tx int", renderAt(t, plain, 1))
}

func TestRender_Types(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"named", named("int"), "int"},
		{"package qualified", NewQualifiedTypeName("io", "Reader"), "io.Reader"},
		{
			name:     "nested qualified",
			typ:      NewNestedTypeName(NewQualifiedTypeName("pkg", "Outer"), "Inner"),
			expected: "pkg.Outer.Inner",
		},
		{"array", NewArrayType(named("byte"), num("16")), "byte[16]"},
		{"slice", NewSliceType(named("int")), "int[]"},
		{"raw slice", NewRawSliceType(named("u8")), "u8[_]"},
		{"pointer", NewPointerType(named("Node")), "Node?"},
		{"slice of pointers", NewSliceType(NewPointerType(named("Node"))), "Node?[]"},
		{"empty function", NewFunctionType(nil, nil), "func () -> ()"},
		{
			name:     "function",
			typ:      NewFunctionType([]Type{named("int"), NewSliceType(named("u8"))}, []Type{named("bool")}),
			expected: "func (int, u8[]) -> (bool)",
		},
		{
			name:     "instantiation",
			typ:      NewTypeInstantiation(named("Map"), named("string"), NewPointerType(named("T"))),
			expected: "Map[string, T?]",
		},
		{
			name:     "array sized by expression",
			typ:      NewArrayType(named("int"), NewBinaryExpr(Multiply, num("2"), num("8"))),
			expected: "int[(2) * (8)]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sprint(t, tt.typ))
		})
	}
}

func TestRender_Containers(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		level    int
		expected string
	}{
		{
			name:     "empty struct",
			typ:      NewStructType(),
			expected: "struct {\n}\n",
		},
		{
			name:     "struct",
			typ:      NewStructType(NewField("x", named("int")), NewEmbeddedField(named("Base"))),
			expected: "struct {\n\tx int\n\tBase\n}\n",
		},
		{
			name:     "union",
			typ:      NewUnionType(NewField("i", named("i64")), NewField("f", named("f64"))),
			expected: "union {\n\ti i64\n\tf f64\n}\n",
		},
		{
			name:     "struct at level two",
			typ:      NewStructType(NewField("x", named("int"))),
			level:    2,
			expected: "struct {\n\t\t\tx int\n\t\t}\n",
		},
		{
			name: "nested struct",
			typ: NewStructType(
				NewField("inner", NewStructType(NewField("y", named("int")))),
				NewField("z", named("int")),
			),
			expected: "struct {\n\tinner struct {\n\t\ty int\n\t}\n\tz int\n}\n",
		},
		{
			name: "interface",
			typ: NewInterfaceType(
				NewMethod("Read", NewFunctionType([]Type{NewSliceType(named("u8"))}, []Type{named("int")})),
				NewMethod("Close", NewFunctionType(nil, nil)),
			),
			expected: "interface {\n\tRead func (u8[]) -> (int)\n\tClose func () -> ()\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderAt(t, tt.typ, tt.level))
		})
	}
}

func TestRender_StructIndentation(t *testing.T) {
	st := NewStructType(
		NewField("a", named("int")),
		NewField("b", named("int")),
		NewEmbeddedField(named("C")),
	)
	for level := 0; level < 5; level++ {
		out := renderAt(t, st, level)
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 5)

		fieldPrefix := strings.Repeat("\t", level+1)
		for _, line := range lines[1:4] {
			assert.True(t, strings.HasPrefix(line, fieldPrefix), "level %d: %q", level, line)
			assert.False(t, strings.HasPrefix(line, fieldPrefix+"\t"), "level %d: %q", level, line)
		}
		assert.Equal(t, strings.Repeat("\t", level)+"}", lines[4])
	}
}

func TestRender_Expressions(t *testing.T) {
	a := NewPackageAccess("m", "a")
	b := NewPackageAccess("m", "b")
	c := NewPackageAccess("m", "c")

	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"binary", NewBinaryExpr(Add, num("1"), num("2")), "(1) + (2)"},
		{
			name:     "nested binary",
			expr:     NewBinaryExpr(Multiply, NewBinaryExpr(Add, a, b), c),
			expected: "((m.a) + (m.b)) * (m.c)",
		},
		{"bit clear", NewBinaryExpr(BitClear, a, b), "(m.a) &^ (m.b)"},
		{"unary", NewUnaryExpr(Negate, num("1")), "- 1"},
		{"unary over binary", NewUnaryExpr(LogicalNot, NewBinaryExpr(Less, a, b)), "! (m.a) < (m.b)"},
		{"address of", NewUnaryExpr(AddressOf, a), "@ m.a"},
		{"true", NewBooleanLiteral(true), "true"},
		{"false", NewBooleanLiteral(false), "false"},
		{"string", NewStringLiteral(`"hi\n"`), `"hi\n"`},
		{"hex number", num("0xFF_FF"), "0xFF_FF"},
		{"array access", NewArrayAccess(a, num("0")), "m.a[0]"},
		{"field access", NewFieldAccess(a, "len"), "m.a.len"},
		{"dereference", NewPointerDereference(a), "m.a."},
		{"field of dereference", NewFieldAccess(NewPointerDereference(a), "x"), "m.a..x"},
		{"cast", NewTypeCast(named("u8"), num("255")), "u8(255)"},
		{"cast to slice", NewTypeCast(NewSliceType(named("u8")), NewStringLiteral(`"abc"`)), `u8[]("abc")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sprint(t, tt.expr))
		})
	}
}

func TestRender_InvalidOperator(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
	}{
		{"zero binary", NewBinaryExpr(0, num("1"), num("2"))},
		{"out of range binary", NewBinaryExpr(BinaryOperator(99), num("1"), num("2"))},
		{"zero unary", NewUnaryExpr(0, num("1"))},
		{"nested", NewTypeCast(named("int"), NewUnaryExpr(UnaryOperator(-1), num("1")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sprint(tt.expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOperator))
		})
	}
}

type failingWriter struct {
	budget int
}

var errWriterFull = errors.New("writer full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		return 0, errWriterFull
	}
	w.budget -= len(p)
	return len(p), nil
}

func TestRender_WriterError(t *testing.T) {
	f := NewFile("main", []*Import{NewImport("fmt"), NewImport("os")})
	err := f.Render(&failingWriter{budget: 16}, 0)
	assert.ErrorIs(t, err, errWriterFull)
}

func TestAccessorsReturnCopies(t *testing.T) {
	st := NewStructType(NewField("x", named("int")))
	fields := st.Fields()
	fields[0] = NewField("y", named("bool"))
	assert.Equal(t, "struct {\n\tx int\n}\n", sprint(t, st))

	f := NewFile("main", []*Import{NewImport("fmt")})
	imports := f.Imports()
	imports[0] = NewImport("os")
	assert.Equal(t, "fmt", f.Imports()[0].Path())
}
